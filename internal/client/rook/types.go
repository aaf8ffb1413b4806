package rook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Decimal accepts JSON numbers, numeric strings and null. Valid is false when
// the field was absent or null so callers can tell "missing" from zero.
type Decimal struct {
	decimal.Decimal
	Valid bool
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		d.Decimal, d.Valid = decimal.Zero, false
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" {
			d.Decimal, d.Valid = decimal.Zero, false
			return nil
		}
		val, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		d.Decimal, d.Valid = val, true
		return nil
	}
	val, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid decimal: %s", string(b))
	}
	d.Decimal, d.Valid = val, true
	return nil
}

// Text accepts a JSON string or number and keeps its literal text. Salts are
// uint256 values that do not fit a float64.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	return fmt.Errorf("invalid text: %s", string(b))
}

type TokenPrice struct {
	USDPrice Decimal `json:"usd_price"`
	ETHPrice Decimal `json:"eth_price"`
}

type Token struct {
	Address     string     `json:"address"`
	Symbol      string     `json:"symbol"`
	Name        string     `json:"name"`
	Decimals    Decimal    `json:"decimals"`
	CoinGeckoID string     `json:"coingecko_id"`
	Active      *bool      `json:"active"`
	LatestPrice TokenPrice `json:"latest_price"`
}

type Order struct {
	Maker       string  `json:"maker"`
	Taker       string  `json:"taker"`
	MakerToken  string  `json:"makerToken"`
	TakerToken  string  `json:"takerToken"`
	MakerAmount Decimal `json:"makerAmount"`
	TakerAmount Decimal `json:"takerAmount"`
	Salt        Text    `json:"salt"`
	Expiry      Decimal `json:"expiry"`
}

type OrderMetaData struct {
	OrderHash                         string  `json:"orderHash"`
	Creation                          Decimal `json:"creation"`
	FilledAmountTakerToken            Decimal `json:"filledAmount_takerToken"`
	RemainingFillableAmountTakerToken Decimal `json:"remainingFillableAmount_takerToken"`
}

// OrderRecord is one entry of the open-order list or of order history. Fills
// are only populated by the order-hash history query.
type OrderRecord struct {
	Order      Order         `json:"order"`
	MetaData   OrderMetaData `json:"metaData"`
	OrderFills []Fill        `json:"orderFills"`
	// SkippedFills counts nested fills that failed to decode.
	SkippedFills int `json:"-"`
}

func (r *OrderRecord) UnmarshalJSON(b []byte) error {
	type plain OrderRecord
	var raw struct {
		plain
		OrderFills []json.RawMessage `json:"orderFills"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = OrderRecord(raw.plain)
	if raw.OrderFills != nil {
		r.OrderFills, r.SkippedFills = decodeEach[Fill](raw.OrderFills)
	}
	return nil
}

type Fill struct {
	TxHash                 string  `json:"txHash"`
	Taker                  string  `json:"taker"`
	Timestamp              Decimal `json:"timestamp"`
	BlockNumber            Decimal `json:"blockNumber"`
	MakerToken             string  `json:"makerToken"`
	TakerToken             string  `json:"takerToken"`
	MakerTokenFilledAmount Decimal `json:"makerTokenFilledAmount"`
	TakerTokenFilledAmount Decimal `json:"takerTokenFilledAmount"`
	GasUsed                Decimal `json:"gasUsed"`
	GasPrice               Decimal `json:"gasPrice"`
	ETHPrice               Decimal `json:"ethPrice"`
}

type Outcome struct {
	OutcomeValue   Decimal `json:"outcomeValue"`
	OutcomeReceipt Text    `json:"outcomeReceipt"`
	TxHash         string  `json:"txHash"`
	BatchCount     Decimal `json:"batchCount"`
}

type Bid struct {
	KeeperIdentityAddress string  `json:"keeperIdentityAddress"`
	RookEtherUnits        Decimal `json:"rook_etherUnits"`
	ScoreBid              Decimal `json:"score_bid"`
	ScoreRandom           Decimal `json:"score_random"`
	ScoreTargetFillAmount Decimal `json:"score_targetFillAmount"`
	ScoreReputation       Decimal `json:"score_reputation"`
	ScoreStake            Decimal `json:"score_stake"`
	Score                 Decimal `json:"score"`
	Outcome               Outcome `json:"outcome"`
	AuctionID             Text    `json:"auctionId"`
	BidID                 Text    `json:"bidId"`
}

type Auction struct {
	AuctionCreationBlockNumber   Decimal `json:"auctionCreationBlockNumber"`
	AuctionSettlementBlockNumber Decimal `json:"auctionSettlementBlockNumber"`
	AuctionDeadlineBlockNumber   Decimal `json:"auctionDeadlineBlockNumber"`
	BidList                      []Bid   `json:"bidList"`
	// SkippedBids counts bids that failed to decode.
	SkippedBids int `json:"-"`
}

func (a *Auction) UnmarshalJSON(b []byte) error {
	type plain Auction
	var raw struct {
		plain
		BidList []json.RawMessage `json:"bidList"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = Auction(raw.plain)
	if raw.BidList != nil {
		a.BidList, a.SkippedBids = decodeEach[Bid](raw.BidList)
	}
	return nil
}

// Identity is a registry entry from the market-maker or keeper lists.
type Identity struct {
	Address string
	Name    string
}

// Candle is one OHLC row of a token's price history.
type Candle struct {
	TS    time.Time
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal
}
