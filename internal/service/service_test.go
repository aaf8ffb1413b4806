package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hidingbook/internal/cache"
	"hidingbook/internal/client/rook"
	"hidingbook/internal/config"
	"hidingbook/internal/models"
)

func newServices(t *testing.T, up *fakeUpstream) (*TokenService, *RegistryService, *OrderService) {
	t.Helper()
	memo := cache.NewMemo(cache.NewMemoryStore(), nil)
	tokens := &TokenService{Source: up, Memo: memo, TTL: time.Hour}
	reg := &RegistryService{Source: up, Memo: memo, TTL: time.Hour}
	orders := &OrderService{
		Source:       up,
		Tokens:       tokens,
		Registry:     reg,
		Memo:         memo,
		OpenTTL:      time.Minute,
		HistoryTTL:   time.Minute,
		PageSize:     100,
		MaxPages:     50,
		FallbackName: "Unknown",
	}
	return tokens, reg, orders
}

func TestTokenServiceMemoizes(t *testing.T) {
	up := &fakeUpstream{tokens: defaultTokens(t)}
	tokens, _, _ := newServices(t, up)

	for i := 0; i < 3; i++ {
		table, err := tokens.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, table.Len())
	}
	require.Equal(t, 1, up.tokenHits)

	tok, err := tokens.Resolve(context.Background(), "weth")
	require.NoError(t, err)
	require.Equal(t, int32(18), tok.Decimals)
	require.True(t, tok.USDPrice.Equal(decimal.NewFromInt(2000)))

	_, err = tokens.Resolve(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrUnknownToken)
	require.True(t, IsValidation(err))
}

func TestTokenServicePropagatesFetchError(t *testing.T) {
	up := &fakeUpstream{tokensErr: &rook.APIError{Status: 503, Body: "down"}}
	tokens, _, _ := newServices(t, up)
	_, err := tokens.Load(context.Background())
	var apiErr *rook.APIError
	require.True(t, errors.As(err, &apiErr))
	require.False(t, IsValidation(err))
}

func TestRegistryFirstWriteWins(t *testing.T) {
	up := &fakeUpstream{
		makers:  []rook.Identity{{Address: makerAddr, Name: "MM"}},
		keepers: []rook.Identity{{Address: keeperHex, Name: "Keeper"}, {Address: makerAddr, Name: "Dup"}},
	}
	_, reg, _ := newServices(t, up)
	reg.Manual = []config.ManualAddress{
		{Address: keeperHex, Name: "Manual Keeper", Type: "User"},
		{Address: "0x3333333333333333333333333333333333333333", Name: "Ops", Type: "App User"},
	}

	r, err := reg.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "MM", r.NameOr(makerAddr, ""))
	require.True(t, r.IsType(makerAddr, models.AddressMarketMaker))
	require.Equal(t, "Keeper", r.NameOr(keeperHex, ""))
	require.True(t, r.IsType("0x3333333333333333333333333333333333333333", models.AddressAppUser))
	require.Len(t, r.All(), 3)
}

func TestOrderHistoryPagination(t *testing.T) {
	sizes := []int{100, 100, 37}
	up := &fakeUpstream{tokens: defaultTokens(t)}
	up.historyFn = func(limit, offset int) (rook.OrderPage, error) {
		page := offset / limit
		if page >= len(sizes) {
			return rook.OrderPage{}, nil
		}
		recs := make([]rook.OrderRecord, sizes[page])
		for i := range recs {
			recs[i] = wethUSDCRecord(t, fmt.Sprintf("0x%d_%d", page, i))
		}
		return rook.OrderPage{Records: recs}, nil
	}
	_, _, orders := newServices(t, up)

	res, err := orders.History(context.Background(), makerAddr)
	require.NoError(t, err)
	require.Equal(t, []int{0, 100, 200}, up.historyReqs)
	require.Len(t, res.Orders, 237)
	require.Equal(t, 3, res.Pages)
	require.Zero(t, res.DroppedTotal())

	// served from cache
	_, err = orders.History(context.Background(), makerAddr)
	require.NoError(t, err)
	require.Len(t, up.historyReqs, 3)
}

func TestOrderHistorySkippedRecordsStillCountTowardsPage(t *testing.T) {
	up := &fakeUpstream{tokens: defaultTokens(t)}
	up.historyFn = func(limit, offset int) (rook.OrderPage, error) {
		if offset == 0 {
			recs := make([]rook.OrderRecord, 98)
			for i := range recs {
				recs[i] = wethUSDCRecord(t, fmt.Sprintf("0x%d", i))
			}
			return rook.OrderPage{Records: recs, Skipped: 2}, nil
		}
		return rook.OrderPage{Records: []rook.OrderRecord{wethUSDCRecord(t, "0xlast")}}, nil
	}
	_, _, orders := newServices(t, up)

	res, err := orders.History(context.Background(), makerAddr)
	require.NoError(t, err)
	require.Len(t, up.historyReqs, 2)
	require.Len(t, res.Orders, 99)
	require.Equal(t, 2, res.Dropped["undecodable"])
}

func TestOrderHistoryMalformedIsEmpty(t *testing.T) {
	up := &fakeUpstream{tokens: defaultTokens(t)}
	up.historyFn = func(int, int) (rook.OrderPage, error) {
		return rook.OrderPage{}, fmt.Errorf("rook: decode order history: %w", rook.ErrMalformedPayload)
	}
	_, _, orders := newServices(t, up)

	res, err := orders.History(context.Background(), makerAddr)
	require.NoError(t, err)
	require.Empty(t, res.Orders)
	require.NotNil(t, res.Orders)
}

func TestOrderHistoryTransportErrorPropagates(t *testing.T) {
	up := &fakeUpstream{tokens: defaultTokens(t)}
	up.historyFn = func(int, int) (rook.OrderPage, error) {
		return rook.OrderPage{}, &rook.APIError{Status: 500, Body: "boom"}
	}
	_, _, orders := newServices(t, up)

	_, err := orders.History(context.Background(), makerAddr)
	var apiErr *rook.APIError
	require.True(t, errors.As(err, &apiErr))
}

func TestOrderHistoryValidatesAddresses(t *testing.T) {
	_, _, orders := newServices(t, &fakeUpstream{})
	_, err := orders.History(context.Background(), "not-a-wallet")
	require.ErrorIs(t, err, ErrInvalidAddress)
	_, err = orders.History(context.Background())
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOpenOrdersDropsUnknownTokens(t *testing.T) {
	unknown := wethUSDCRecord(t, "0xunknown")
	unknown.Order.MakerToken = "0x9999999999999999999999999999999999999999"
	up := &fakeUpstream{
		tokens: defaultTokens(t),
		makers: []rook.Identity{{Address: makerAddr, Name: "Wintermute"}},
		open:   rook.OrderPage{Records: []rook.OrderRecord{wethUSDCRecord(t, "0xa"), unknown}, Skipped: 1},
	}
	_, _, orders := newServices(t, up)

	res, err := orders.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.Equal(t, map[string]int{"unknown_token": 1, "undecodable": 1}, res.Dropped)

	o := res.Orders[0]
	require.Equal(t, "Wintermute", o.Name)
	require.Equal(t, models.OrderTypeMarketMaker, o.OrderType)
	require.True(t, o.FillPct.Decimal.Equal(decimal.RequireFromString("0.5")))
}

func TestOpenOrdersRegistryFailureFallsBack(t *testing.T) {
	up := &fakeUpstream{
		tokens: defaultTokens(t),
		idErr:  errors.New("coordinator down"),
		open:   rook.OrderPage{Records: []rook.OrderRecord{wethUSDCRecord(t, "0xa")}},
	}
	_, _, orders := newServices(t, up)

	res, err := orders.Open(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Unknown", res.Orders[0].Name)
	require.Equal(t, models.OrderTypeLimitOrder, res.Orders[0].OrderType)
}

func TestFillAndAuctionServices(t *testing.T) {
	up := &fakeUpstream{
		tokens:  defaultTokens(t),
		keepers: []rook.Identity{{Address: keeperHex, Name: "Keeper One"}},
		fills: rook.FillPage{Records: mustJSON[[]rook.OrderRecord](t, `[{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`"},
			"orderFills":[{"txHash":"0xt","taker":"`+keeperHex+`","makerTokenFilledAmount":"1000000000000000000","takerTokenFilledAmount":"2000000000"}]}]`)},
		auctions: rook.AuctionPage{Auctions: mustJSON[[]rook.Auction](t, `[{"auctionCreationBlockNumber":7,"bidList":[{"keeperIdentityAddress":"`+keeperHex+`","outcome":{"outcomeValue":5}}]}]`)},
	}
	tokens, reg, _ := newServices(t, up)
	memo := cache.NewMemo(cache.NewMemoryStore(), nil)

	fills := &FillService{Source: up, Tokens: tokens, Registry: reg, Memo: memo, TTL: time.Minute}
	got, err := fills.Fills(context.Background(), "0xABC")
	require.NoError(t, err)
	require.Len(t, got.Fills, 1)
	require.Zero(t, got.DroppedTotal())
	require.Equal(t, "Keeper One", got.Fills[0].Taker)
	require.True(t, got.Fills[0].TakerAmountFilledUSD.Equal(decimal.NewFromInt(2000)))

	up.fills = rook.FillPage{}
	empty, err := fills.Fills(context.Background(), "0xdef")
	require.NoError(t, err)
	require.Empty(t, empty.Fills)
	require.Zero(t, empty.DroppedTotal())

	_, err = fills.Fills(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidOrderHash)

	auctions := &AuctionService{Source: up, Registry: reg, Memo: memo, TTL: time.Minute}
	bids, err := auctions.Bids(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, bids.Bids, 1)
	require.Equal(t, "Keeper One", bids.Bids[0].Keeper)
	require.Equal(t, "Filled outside valid range", bids.Bids[0].Outcome)
}

func TestUndecodableFillsAndBidsAreReported(t *testing.T) {
	records := mustJSON[[]rook.OrderRecord](t, `[{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`"},
		"orderFills":[
			{"txHash":"0xbad","gasUsed":"n/a"},
			{"txHash":"0xgood","taker":"`+keeperHex+`","makerTokenFilledAmount":"1000000000000000000","takerTokenFilledAmount":"2000000000"}]}]`)
	require.Equal(t, 1, records[0].SkippedFills)
	auctionRows := mustJSON[[]rook.Auction](t, `[{"auctionCreationBlockNumber":7,"bidList":[
		{"keeperIdentityAddress":"`+keeperHex+`","score":"bad"}]}]`)
	require.Equal(t, 1, auctionRows[0].SkippedBids)

	up := &fakeUpstream{
		tokens:   defaultTokens(t),
		fills:    rook.FillPage{Records: records, Skipped: 1},
		auctions: rook.AuctionPage{Auctions: auctionRows, Skipped: 1},
	}
	tokens, reg, _ := newServices(t, up)
	memo := cache.NewMemo(cache.NewMemoryStore(), nil)

	fills := &FillService{Source: up, Tokens: tokens, Registry: reg, Memo: memo, TTL: time.Minute}
	got, err := fills.Fills(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, got.Fills, 1)
	require.Equal(t, "0xgood", got.Fills[0].TxHash)
	require.Equal(t, map[string]int{"undecodable": 1}, got.Dropped)

	auctions := &AuctionService{Source: up, Registry: reg, Memo: memo, TTL: time.Minute}
	bids, err := auctions.Bids(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Empty(t, bids.Bids)
	require.Equal(t, 1, bids.DroppedTotal())
}

func TestCrossRate(t *testing.T) {
	t0 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }
	d := decimal.NewFromInt
	up := &fakeUpstream{
		tokens: defaultTokens(t),
		candles: map[string][]rook.Candle{
			"weth":     {{TS: at(2), Close: d(2100)}, {TS: at(0), Close: d(2000)}, {TS: at(1), Close: d(1800)}},
			"usd-coin": {{TS: at(0), Close: d(1)}, {TS: at(2), Close: d(2)}, {TS: at(3), Close: d(1)}},
		},
	}
	tokens, _, _ := newServices(t, up)
	prices := &PriceService{Source: up, Tokens: tokens, Now: func() time.Time { return at(10) }}

	series, err := prices.CrossRate(context.Background(), CrossRateQuery{
		Base: "WETH", Quote: "usdc", Lookback: "1w",
		Target:    decimal.NewNullDecimal(d(2050)),
		CreatedAt: at(1),
		ExpiresAt: at(12),
	})
	require.NoError(t, err)
	require.Equal(t, "1W", series.Lookback)
	require.Len(t, series.Points, 2)
	require.Equal(t, at(0), series.Points[0].Timestamp)
	require.True(t, series.Points[0].Close.Equal(d(2000)))
	require.True(t, series.Points[1].Close.Equal(d(1050)))
	require.True(t, series.Target.Decimal.Equal(d(2050)))
	require.True(t, series.CreationInRange)
	require.False(t, series.ExpiryInRange, "expiry after now is not drawn")

	_, err = prices.CrossRate(context.Background(), CrossRateQuery{Base: "WETH", Quote: "USDC", Lookback: "2D"})
	require.ErrorIs(t, err, ErrInvalidLookback)

	_, err = prices.CrossRate(context.Background(), CrossRateQuery{Base: "WETH", Quote: "XYZ", Lookback: "MAX"})
	require.ErrorIs(t, err, ErrUnknownToken)
}

func TestBalanceScaledByDecimals(t *testing.T) {
	up := &fakeUpstream{tokens: defaultTokens(t), balance: decimal.RequireFromString("2500000")}
	tokens, _, _ := newServices(t, up)
	balances := &BalanceService{Source: up, Tokens: tokens}

	bal, err := balances.TokenBalance(context.Background(), "USDC", makerAddr)
	require.NoError(t, err)
	require.True(t, bal.Scaled)
	require.True(t, bal.Amount.Equal(decimal.RequireFromString("2.5")))
	require.Equal(t, usdcAddr, bal.Token)

	raw, err := balances.TokenBalance(context.Background(), "0x9999999999999999999999999999999999999999", makerAddr)
	require.NoError(t, err)
	require.False(t, raw.Scaled)
	require.True(t, raw.Amount.Equal(decimal.RequireFromString("2500000")))

	_, err = balances.TokenBalance(context.Background(), "USDC", "0x12")
	require.ErrorIs(t, err, ErrInvalidAddress)
}
