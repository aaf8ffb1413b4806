package rook

import (
	"context"
	"fmt"
	"net/url"
)

// AuctionPage holds the auctions of one order. Skipped counts both auctions
// and nested bids that failed to decode.
type AuctionPage struct {
	Auctions []Auction
	Skipped  int
}

func (c *Client) Auctions(ctx context.Context, orderHash string) (AuctionPage, error) {
	if orderHash == "" {
		return AuctionPage{}, fmt.Errorf("order hash is required")
	}
	query := url.Values{}
	query.Set("orderHashes", orderHash)
	body, err := c.getRook(ctx, "/coordinator/auctions", query)
	if err != nil {
		return AuctionPage{}, fmt.Errorf("rook: get auctions %s: %w", orderHash, err)
	}
	items, err := unwrapList(body, "auctions", "items")
	if err != nil {
		return AuctionPage{}, fmt.Errorf("rook: decode auctions %s: %w", orderHash, err)
	}
	auctions, skipped := decodeEach[Auction](items)
	for _, a := range auctions {
		skipped += a.SkippedBids
	}
	return AuctionPage{Auctions: auctions, Skipped: skipped}, nil
}

func (c *Client) MarketMakers(ctx context.Context) ([]Identity, error) {
	body, err := c.getRook(ctx, "/coordinator/marketMakers", nil)
	if err != nil {
		return nil, fmt.Errorf("rook: get market makers: %w", err)
	}
	out, err := parseIdentities(body)
	if err != nil {
		return nil, fmt.Errorf("rook: decode market makers: %w", err)
	}
	return out, nil
}

func (c *Client) Keepers(ctx context.Context) ([]Identity, error) {
	body, err := c.getRook(ctx, "/coordinator/keepers", nil)
	if err != nil {
		return nil, fmt.Errorf("rook: get keepers: %w", err)
	}
	out, err := parseIdentities(body)
	if err != nil {
		return nil, fmt.Errorf("rook: decode keepers: %w", err)
	}
	return out, nil
}
