package rook

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OrderPage is one decoded page of records plus the count of elements that
// failed to decode.
type OrderPage struct {
	Records []OrderRecord
	Skipped int
}

// Len is the raw page length used for pagination decisions.
func (p OrderPage) Len() int {
	return len(p.Records) + p.Skipped
}

func (c *Client) Tokens(ctx context.Context) ([]Token, int, error) {
	body, err := c.getRook(ctx, "/trade/tokens", nil)
	if err != nil {
		return nil, 0, fmt.Errorf("rook: get tokens: %w", err)
	}
	items, err := unwrapList(body, "tokens", "items", "data")
	if err != nil {
		return nil, 0, fmt.Errorf("rook: decode tokens: %w", err)
	}
	tokens, skipped := decodeEach[Token](items)
	return tokens, skipped, nil
}

// TokenPriceHistory returns OHLC candles. days is a day count or "max".
func (c *Client) TokenPriceHistory(ctx context.Context, coinGeckoID, days string) ([]Candle, error) {
	if coinGeckoID == "" {
		return nil, fmt.Errorf("coingecko id is required")
	}
	query := url.Values{}
	query.Set("coinGeckoTokenId", coinGeckoID)
	query.Set("days", days)
	body, err := c.getRook(ctx, "/trade/tokenPriceHistory", query)
	if err != nil {
		return nil, fmt.Errorf("rook: get price history %s: %w", coinGeckoID, err)
	}
	candles, err := parseCandles(body)
	if err != nil {
		return nil, fmt.Errorf("rook: decode price history %s: %w", coinGeckoID, err)
	}
	return candles, nil
}

// OrderHistory fetches one page of a wallet's historical orders.
func (c *Client) OrderHistory(ctx context.Context, makers []string, limit, offset int) (OrderPage, error) {
	query := url.Values{}
	query.Set("makerAddresses", strings.Join(makers, ","))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	body, err := c.getRook(ctx, "/trade/orderHistory", query)
	if err != nil {
		return OrderPage{}, fmt.Errorf("rook: get order history: %w", err)
	}
	items, err := unwrapList(body, "items")
	if err != nil {
		return OrderPage{}, fmt.Errorf("rook: decode order history: %w", err)
	}
	records, skipped := decodeEach[OrderRecord](items)
	return OrderPage{Records: records, Skipped: skipped}, nil
}

// FillPage holds the history records of one order hash. Skipped counts both
// records and nested fills that failed to decode.
type FillPage struct {
	Records []OrderRecord
	Skipped int
}

// OrderFills returns the history records for one order hash; fills are nested
// under each record.
func (c *Client) OrderFills(ctx context.Context, orderHash string) (FillPage, error) {
	if orderHash == "" {
		return FillPage{}, fmt.Errorf("order hash is required")
	}
	query := url.Values{}
	query.Set("orderHashes", orderHash)
	body, err := c.getRook(ctx, "/trade/orderHistory", query)
	if err != nil {
		return FillPage{}, fmt.Errorf("rook: get order fills %s: %w", orderHash, err)
	}
	items, err := unwrapList(body, "items")
	if err != nil {
		return FillPage{}, fmt.Errorf("rook: decode order fills %s: %w", orderHash, err)
	}
	records, skipped := decodeEach[OrderRecord](items)
	for _, rec := range records {
		skipped += rec.SkippedFills
	}
	return FillPage{Records: records, Skipped: skipped}, nil
}

// OpenOrders lists every open order from the Hiding Book host.
func (c *Client) OpenOrders(ctx context.Context) (OrderPage, error) {
	query := url.Values{}
	query.Set("open", "true")
	body, err := c.getBook(ctx, "/orders", query)
	if err != nil {
		return OrderPage{}, fmt.Errorf("hidingbook: get open orders: %w", err)
	}
	items, err := unwrapList(body, "orders", "items")
	if err != nil {
		return OrderPage{}, fmt.Errorf("hidingbook: decode open orders: %w", err)
	}
	records, skipped := decodeEach[OrderRecord](items)
	return OrderPage{Records: records, Skipped: skipped}, nil
}
