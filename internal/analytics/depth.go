package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"hidingbook/internal/models"
)

// TokenDepth is sell depth (maker side) and buy depth (taker side) for one
// token, in USD.
type TokenDepth struct {
	Token    string          `json:"token"`
	MakerUSD decimal.Decimal `json:"maker_usd"`
	TakerUSD decimal.Decimal `json:"taker_usd"`
}

// DepthByToken groups maker notional by maker token and taker notional by
// taker token. A token seen on one side only gets a zero on the other.
// Rows are sorted by symbol.
func DepthByToken(orders []models.Order) []TokenDepth {
	rows := map[string]*TokenDepth{}
	row := func(sym string) *TokenDepth {
		r, ok := rows[sym]
		if !ok {
			r = &TokenDepth{Token: sym, MakerUSD: decimal.Zero, TakerUSD: decimal.Zero}
			rows[sym] = r
		}
		return r
	}
	for _, o := range orders {
		m := row(o.MakerToken)
		m.MakerUSD = m.MakerUSD.Add(o.MakerAmountUSD)
		t := row(o.TakerToken)
		t.TakerUSD = t.TakerUSD.Add(o.TakerAmountUSD)
	}

	out := make([]TokenDepth, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// DepthTotals sums both sides of a token depth table.
func DepthTotals(rows []TokenDepth) (maker, taker decimal.Decimal) {
	maker, taker = decimal.Zero, decimal.Zero
	for _, r := range rows {
		maker = maker.Add(r.MakerUSD)
		taker = taker.Add(r.TakerUSD)
	}
	return maker, taker
}

// PairDepth folds both directions of a token pair into one row. Pair is the
// direction seen first; MakerUSD sums orders in that direction and TakerUSD
// sums orders in the reverse direction.
type PairDepth struct {
	Pair     string          `json:"pair"`
	MakerUSD decimal.Decimal `json:"maker_usd"`
	TakerUSD decimal.Decimal `json:"taker_usd"`
}

// DepthByPair returns one row per unordered pair in first-seen order.
func DepthByPair(orders []models.Order) []PairDepth {
	type key struct{ a, b string }
	var out []PairDepth
	idx := map[key]int{}
	for _, o := range orders {
		fwd := key{o.MakerToken, o.TakerToken}
		if i, ok := idx[fwd]; ok {
			out[i].MakerUSD = out[i].MakerUSD.Add(o.MakerAmountUSD)
			continue
		}
		if i, ok := idx[key{o.TakerToken, o.MakerToken}]; ok {
			out[i].TakerUSD = out[i].TakerUSD.Add(o.MakerAmountUSD)
			continue
		}
		idx[fwd] = len(out)
		out = append(out, PairDepth{Pair: o.Pair(), MakerUSD: o.MakerAmountUSD, TakerUSD: decimal.Zero})
	}
	if out == nil {
		out = []PairDepth{}
	}
	return out
}
