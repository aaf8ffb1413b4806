package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hidingbook/internal/models"
)

// TimelinePoint is one order on the "orders over time" chart.
type TimelinePoint struct {
	OrderHash           string              `json:"order_hash"`
	CreatedAt           time.Time           `json:"created_at"`
	Pair                string              `json:"pair"`
	TakerAmountUSD      decimal.Decimal     `json:"taker_amount_usd"`
	FillPct             decimal.NullDecimal `json:"fill_pct"`
	FilledUSD           decimal.Decimal     `json:"filled_usd"`
	CumulativeFilledUSD decimal.Decimal     `json:"cumulative_filled_usd"`
}

// Timeline sorts orders by creation and accumulates filled USD. Orders with
// an undefined fill percentage contribute nothing to the running total.
func Timeline(orders []models.Order) []TimelinePoint {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	out := make([]TimelinePoint, 0, len(sorted))
	total := decimal.Zero
	for _, o := range sorted {
		filled := decimal.Zero
		if o.FillPct.Valid {
			filled = o.TakerAmountUSD.Mul(o.FillPct.Decimal)
		}
		total = total.Add(filled)
		out = append(out, TimelinePoint{
			OrderHash:           o.OrderHash,
			CreatedAt:           o.CreatedAt,
			Pair:                o.Pair(),
			TakerAmountUSD:      o.TakerAmountUSD,
			FillPct:             o.FillPct,
			FilledUSD:           filled,
			CumulativeFilledUSD: total,
		})
	}
	return out
}

const (
	FillUnfilled  = "A. Unfilled (0%)"
	FillPartial   = "B. Partial (<50%)"
	FillMostly    = "C. Mostly (50-<100%)"
	FillFilled    = "D. Filled (100%)"
	FillUndefined = "E. Undefined"
)

var (
	half = decimal.NewFromFloat(0.5)
	full = decimal.NewFromInt(1)
)

// FillLevel classifies an order's fill percentage.
func FillLevel(pct decimal.NullDecimal) string {
	switch {
	case !pct.Valid:
		return FillUndefined
	case !pct.Decimal.IsPositive():
		return FillUnfilled
	case pct.Decimal.LessThan(half):
		return FillPartial
	case pct.Decimal.LessThan(full):
		return FillMostly
	default:
		return FillFilled
	}
}

// FillLevels counts orders per fill level. Every level is present.
func FillLevels(orders []models.Order) []Bucket {
	labels := []string{FillUnfilled, FillPartial, FillMostly, FillFilled, FillUndefined}
	out := make([]Bucket, len(labels))
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		out[i] = Bucket{Label: l}
		idx[l] = i
	}
	for _, o := range orders {
		out[idx[FillLevel(o.FillPct)]].Count++
	}
	return out
}
