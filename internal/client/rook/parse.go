package rook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// unwrapList accepts either a bare JSON array or an object carrying the array
// under one of keys.
func unwrapList(body []byte, keys ...string) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	raw := firstRaw(obj, keys...)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return list, nil
}

// decodeEach decodes every element independently so one bad record does not
// sink the batch. It returns the number of skipped elements.
func decodeEach[T any](items []json.RawMessage) ([]T, int) {
	out := make([]T, 0, len(items))
	skipped := 0
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

func parseIdentities(body []byte) ([]Identity, error) {
	items, err := unwrapList(body, "items", "marketMakers", "keepers", "data")
	if err != nil {
		return nil, err
	}
	out := make([]Identity, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		addr := rawString(firstRaw(obj, "address", "keeperIdentityAddress", "identityAddress", "makerAddress"))
		if addr == "" {
			continue
		}
		name := rawString(firstRaw(obj, "name", "keeperName", "label"))
		out = append(out, Identity{Address: addr, Name: name})
	}
	return out, nil
}

func parseCandles(body []byte) ([]Candle, error) {
	items, err := unwrapList(body, "prices", "data", "items")
	if err != nil {
		return nil, err
	}
	out := make([]Candle, 0, len(items))
	for _, item := range items {
		if c, ok := parseCandleArray(item); ok {
			out = append(out, c)
			continue
		}
		if c, ok := parseCandleObject(item); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// [ts, open, high, low, close] or [ts, price].
func parseCandleArray(item json.RawMessage) (Candle, bool) {
	var arr []json.RawMessage
	if err := json.Unmarshal(item, &arr); err != nil || len(arr) < 2 {
		return Candle{}, false
	}
	ts, err := parseTimeRaw(arr[0])
	if err != nil {
		return Candle{}, false
	}
	vals := make([]decimal.Decimal, 0, 4)
	for _, raw := range arr[1:] {
		var d Decimal
		if err := json.Unmarshal(raw, &d); err != nil || !d.Valid {
			return Candle{}, false
		}
		vals = append(vals, d.Decimal)
	}
	if len(vals) >= 4 {
		return Candle{TS: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}, true
	}
	p := vals[len(vals)-1]
	return Candle{TS: ts, Open: p, High: p, Low: p, Close: p}, true
}

func parseCandleObject(item json.RawMessage) (Candle, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil {
		return Candle{}, false
	}
	ts, err := parseTimeRaw(firstRaw(obj, "timestamp", "ts", "t", "time"))
	if err != nil {
		return Candle{}, false
	}
	var closeVal Decimal
	if err := json.Unmarshal(firstRaw(obj, "close", "c", "price"), &closeVal); err != nil || !closeVal.Valid {
		return Candle{}, false
	}
	c := Candle{TS: ts, Open: closeVal.Decimal, High: closeVal.Decimal, Low: closeVal.Decimal, Close: closeVal.Decimal}
	for key, dst := range map[string]*decimal.Decimal{"open": &c.Open, "high": &c.High, "low": &c.Low} {
		var d Decimal
		if raw := firstRaw(obj, key); len(raw) > 0 && json.Unmarshal(raw, &d) == nil && d.Valid {
			*dst = d.Decimal
		}
	}
	return c, true
}

func parseTimeRaw(b json.RawMessage) (time.Time, error) {
	if len(b) == 0 {
		return time.Time{}, fmt.Errorf("missing time")
	}
	var i int64
	if err := json.Unmarshal(b, &i); err == nil {
		return UnixToTime(i), nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		return UnixToTime(int64(f)), nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time: %s", string(b))
}

// UnixToTime accepts seconds or milliseconds.
func UnixToTime(v int64) time.Time {
	if v > 1_000_000_000_000 {
		return time.UnixMilli(v).UTC()
	}
	return time.Unix(v, 0).UTC()
}

func firstRaw(m map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return nil
}

func rawString(b json.RawMessage) string {
	var t Text
	if len(b) == 0 || json.Unmarshal(b, &t) != nil {
		return ""
	}
	return strings.TrimSpace(string(t))
}
