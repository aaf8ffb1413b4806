package service

import (
	"context"

	"github.com/shopspring/decimal"

	"hidingbook/internal/client/rook"
)

// The interfaces below are the slices of rook.Client each service depends on.

type TokenSource interface {
	Tokens(ctx context.Context) ([]rook.Token, int, error)
}

type PriceSource interface {
	TokenPriceHistory(ctx context.Context, coinGeckoID, days string) ([]rook.Candle, error)
}

type OrderSource interface {
	OpenOrders(ctx context.Context) (rook.OrderPage, error)
	OrderHistory(ctx context.Context, makers []string, limit, offset int) (rook.OrderPage, error)
}

type FillSource interface {
	OrderFills(ctx context.Context, orderHash string) (rook.FillPage, error)
}

type AuctionSource interface {
	Auctions(ctx context.Context, orderHash string) (rook.AuctionPage, error)
}

type IdentitySource interface {
	MarketMakers(ctx context.Context) ([]rook.Identity, error)
	Keepers(ctx context.Context) ([]rook.Identity, error)
}

type BalanceSource interface {
	TokenBalance(ctx context.Context, contract, wallet string) (decimal.Decimal, error)
}
