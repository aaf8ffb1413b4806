package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeMarketMaker OrderType = "MarketMaker"
	OrderTypeAutoFill    OrderType = "AutoFill"
	OrderTypeLimitOrder  OrderType = "LimitOrder"
)

// AutoFillMaxLifetime separates auto-fill orders from resting limit orders.
const AutoFillMaxLifetime = 180 * time.Second

// Order is one Hiding Book order joined against the token table. All amounts
// are decimal-scaled by their token's precision.
type Order struct {
	OrderHash string    `json:"order_hash"`
	Salt      string    `json:"salt"`
	Maker     string    `json:"maker"`
	Name      string    `json:"name"`
	OrderType OrderType `json:"order_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	MakerToken        string `json:"maker_token"`
	MakerTokenAddress string `json:"maker_token_address"`
	TakerToken        string `json:"taker_token"`
	TakerTokenAddress string `json:"taker_token_address"`

	MakerAmount                  decimal.Decimal `json:"maker_amount"`
	TakerAmount                  decimal.Decimal `json:"taker_amount"`
	FilledTakerAmount            decimal.Decimal `json:"filled_taker_amount"`
	RemainingFillableTakerAmount decimal.Decimal `json:"remaining_fillable_taker_amount"`

	Price   decimal.NullDecimal `json:"price"`
	FillPct decimal.NullDecimal `json:"fill_pct"`

	MakerAmountUSD decimal.Decimal `json:"maker_amount_usd"`
	MakerAmountETH decimal.Decimal `json:"maker_amount_eth"`
	TakerAmountUSD decimal.Decimal `json:"taker_amount_usd"`
	TakerAmountETH decimal.Decimal `json:"taker_amount_eth"`

	UnfilledTakerAmount decimal.Decimal `json:"unfilled_taker_amount"`
	UnfilledTakerUSD    decimal.Decimal `json:"unfilled_taker_usd"`
	UnfilledTakerETH    decimal.Decimal `json:"unfilled_taker_eth"`

	DiffUnfilledUSD decimal.NullDecimal `json:"diff_unfilled_usd"`
	DiffUnfilledETH decimal.NullDecimal `json:"diff_unfilled_eth"`
	DiffPct         decimal.NullDecimal `json:"diff_pct"`

	Description string     `json:"description"`
	Links       OrderLinks `json:"links"`
}

type OrderLinks struct {
	Etherscan string `json:"etherscan"`
	Nansen    string `json:"nansen"`
}

// Lifetime is the window between creation and expiry.
func (o Order) Lifetime() time.Duration {
	return o.ExpiresAt.Sub(o.CreatedAt)
}

// Pair is the directional "MAKER/TAKER" label.
func (o Order) Pair() string {
	return o.MakerToken + "/" + o.TakerToken
}
