package analytics

import (
	"github.com/shopspring/decimal"

	"hidingbook/internal/models"
)

// Bucket is one labelled count. Labels carry a letter prefix so lexical
// order matches display order.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type sizeBound struct {
	label string
	upper decimal.Decimal // exclusive; zero for the last bucket
}

var sizeBounds = []sizeBound{
	{"A. Tiny", decimal.NewFromInt(1_000)},
	{"B. Small", decimal.NewFromInt(5_000)},
	{"C. Avg", decimal.NewFromInt(10_000)},
	{"D. Large", decimal.NewFromInt(50_000)},
	{"E. Very Large", decimal.NewFromInt(150_000)},
	{"F. Huge", decimal.Zero},
}

// SizeLabel returns the bucket for a USD notional. Intervals are half-open
// with the lower bound inclusive.
func SizeLabel(usd decimal.Decimal) string {
	last := len(sizeBounds) - 1
	for _, b := range sizeBounds[:last] {
		if usd.LessThan(b.upper) {
			return b.label
		}
	}
	return sizeBounds[last].label
}

// SizeBuckets counts orders by TakerAmountUSD. All six buckets are returned,
// including empty ones.
func SizeBuckets(orders []models.Order) []Bucket {
	out := make([]Bucket, len(sizeBounds))
	idx := make(map[string]int, len(sizeBounds))
	for i, b := range sizeBounds {
		out[i] = Bucket{Label: b.label}
		idx[b.label] = i
	}
	for _, o := range orders {
		out[idx[SizeLabel(o.TakerAmountUSD)]].Count++
	}
	return out
}
