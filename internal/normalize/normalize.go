// Package normalize turns raw upstream records into the typed rows served by
// the API. Every function here is pure: no I/O, no clocks.
package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hidingbook/internal/client/rook"
)

var (
	// ErrMissingField marks a record that lacks a field every row needs.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownToken marks a record whose token is absent from the token
	// table. Such rows are dropped, matching an inner join.
	ErrUnknownToken = errors.New("token not in reference table")
)

// Reason is the short label used when counting dropped rows.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownToken):
		return "unknown_token"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	default:
		return "invalid"
	}
}

var (
	one       = decimal.NewFromInt(1)
	gweiToEth = decimal.New(1, -9)
)

// scale converts a raw integer amount into token units.
func scale(raw decimal.Decimal, decimals int32) decimal.Decimal {
	return raw.Shift(-decimals)
}

// div returns a/b or null when b is zero.
func div(a, b decimal.Decimal) decimal.NullDecimal {
	if b.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(a.Div(b))
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

func unixTime(d rook.Decimal) (time.Time, bool) {
	if !d.Valid || !d.IsPositive() {
		return time.Time{}, false
	}
	return rook.UnixToTime(d.IntPart()), true
}

func uintOf(d rook.Decimal) uint64 {
	if !d.Valid || d.IsNegative() {
		return 0
	}
	return d.BigInt().Uint64()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
