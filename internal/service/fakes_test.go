package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"hidingbook/internal/client/rook"
)

const (
	usdcAddr  = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	wethAddr  = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	makerAddr = "0x1111111111111111111111111111111111111111"
	keeperHex = "0x2222222222222222222222222222222222222222"
)

type fakeUpstream struct {
	mu sync.Mutex

	tokens    []rook.Token
	tokensErr error
	tokenHits int

	open        rook.OrderPage
	historyFn   func(limit, offset int) (rook.OrderPage, error)
	historyReqs []int

	fills    rook.FillPage
	auctions rook.AuctionPage
	makers   []rook.Identity
	keepers  []rook.Identity
	idErr    error

	candles map[string][]rook.Candle
	balance decimal.Decimal
}

func (f *fakeUpstream) Tokens(context.Context) ([]rook.Token, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenHits++
	return f.tokens, 0, f.tokensErr
}

func (f *fakeUpstream) OpenOrders(context.Context) (rook.OrderPage, error) {
	return f.open, nil
}

func (f *fakeUpstream) OrderHistory(_ context.Context, _ []string, limit, offset int) (rook.OrderPage, error) {
	f.mu.Lock()
	f.historyReqs = append(f.historyReqs, offset)
	f.mu.Unlock()
	return f.historyFn(limit, offset)
}

func (f *fakeUpstream) OrderFills(context.Context, string) (rook.FillPage, error) {
	return f.fills, nil
}

func (f *fakeUpstream) Auctions(context.Context, string) (rook.AuctionPage, error) {
	return f.auctions, nil
}

func (f *fakeUpstream) MarketMakers(context.Context) ([]rook.Identity, error) {
	return f.makers, f.idErr
}

func (f *fakeUpstream) Keepers(context.Context) ([]rook.Identity, error) {
	return f.keepers, f.idErr
}

func (f *fakeUpstream) TokenPriceHistory(_ context.Context, id, _ string) ([]rook.Candle, error) {
	c, ok := f.candles[id]
	if !ok {
		return nil, fmt.Errorf("no series for %s", id)
	}
	return c, nil
}

func (f *fakeUpstream) TokenBalance(context.Context, string, string) (decimal.Decimal, error) {
	return f.balance, nil
}

func mustJSON[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return out
}

func defaultTokens(t *testing.T) []rook.Token {
	return mustJSON[[]rook.Token](t, `[
		{"address":"`+usdcAddr+`","symbol":"USDC","decimals":6,"coingecko_id":"usd-coin","latest_price":{"usd_price":"1.00","eth_price":"0.0005"}},
		{"address":"`+wethAddr+`","symbol":"WETH","decimals":18,"coingecko_id":"weth","latest_price":{"usd_price":"2000.00","eth_price":"1"}}
	]`)
}

func wethUSDCRecord(t *testing.T, hash string) rook.OrderRecord {
	return mustJSON[rook.OrderRecord](t, `{
		"order":{"maker":"`+makerAddr+`","makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`",
			"makerAmount":"1000000000000000000","takerAmount":"2000000000","expiry":1700086400},
		"metaData":{"orderHash":"`+hash+`","creation":1700000000,"filledAmount_takerToken":"1000000000"}}`)
}
