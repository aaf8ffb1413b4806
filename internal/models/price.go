package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Close     decimal.Decimal `json:"close"`
}

// CrossRateSeries is the data behind the price-vs-limit chart.
type CrossRateSeries struct {
	Base            string              `json:"base"`
	Quote           string              `json:"quote"`
	Lookback        string              `json:"lookback"`
	Points          []PricePoint        `json:"points"`
	Target          decimal.NullDecimal `json:"target"`
	CreationInRange bool                `json:"creation_in_range"`
	ExpiryInRange   bool                `json:"expiry_in_range"`
}
