package normalize

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hidingbook/internal/client/rook"
	"hidingbook/internal/models"
)

const (
	usdcAddr  = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	wethAddr  = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	makerAddr = "0x1111111111111111111111111111111111111111"
	keeperHex = "0x2222222222222222222222222222222222222222"
)

func testTokens() *models.TokenTable {
	return models.NewTokenTable([]models.Token{
		{Address: usdcAddr, Symbol: "usdc", Decimals: 6, USDPrice: decimal.RequireFromString("1.00"), ETHPrice: decimal.RequireFromString("0.0005")},
		{Address: wethAddr, Symbol: "WETH", Decimals: 18, USDPrice: decimal.RequireFromString("2000.00"), ETHPrice: decimal.NewFromInt(1)},
	})
}

func decodeRecord(t *testing.T, body string) rook.OrderRecord {
	t.Helper()
	var rec rook.OrderRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	return rec
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOrderEndToEndWETHUSDC(t *testing.T) {
	rec := decodeRecord(t, `{
		"order": {"maker":"`+makerAddr+`","makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`",
			"makerAmount":"1000000000000000000","takerAmount":"2000000000","salt":"42","expiry":1700000100},
		"metaData": {"orderHash":"0xabc","creation":1700000000,"filledAmount_takerToken":"1000000000"}
	}`)

	o, err := Order(rec, OrderContext{Tokens: testTokens(), FallbackName: "Unknown"})
	require.NoError(t, err)

	require.True(t, o.MakerAmount.Equal(dec("1")), "maker=%s", o.MakerAmount)
	require.True(t, o.TakerAmount.Equal(dec("2000")), "taker=%s", o.TakerAmount)
	require.True(t, o.Price.Valid && o.Price.Decimal.Equal(dec("2000")), "price=%v", o.Price)
	require.True(t, o.FillPct.Valid && o.FillPct.Decimal.Equal(dec("0.5")), "fill=%v", o.FillPct)
	require.True(t, o.MakerAmountUSD.Equal(dec("2000")))
	require.True(t, o.TakerAmountUSD.Equal(dec("2000")))
	require.True(t, o.DiffUnfilledUSD.Valid && o.DiffUnfilledUSD.Decimal.IsZero())
	require.True(t, o.DiffPct.Valid && o.DiffPct.Decimal.IsZero())
	require.True(t, o.RemainingFillableTakerAmount.Equal(dec("1000")))
	require.True(t, o.UnfilledTakerUSD.Equal(dec("1000")))

	require.Equal(t, "WETH", o.MakerToken)
	require.Equal(t, "USDC", o.TakerToken)
	require.Equal(t, "WETH/USDC", o.Pair())
	require.Equal(t, "Unknown", o.Name)
	require.Equal(t, models.OrderTypeAutoFill, o.OrderType)
	require.Equal(t, "42", o.Salt)
	require.Equal(t, "Sell 1 WETH for 2000 USDC @ 2000 USDC/WETH (50.00% filled)", o.Description)
	require.Equal(t, "https://etherscan.io/address/"+makerAddr+"#tokentxns", o.Links.Etherscan)
	require.Equal(t, "https://pro.nansen.ai/wallet-profiler?address="+makerAddr, o.Links.Nansen)
}

func TestOrderDecimalRoundTrip(t *testing.T) {
	cases := []struct{ maker, taker string }{
		{"1", "1"},
		{"123456789012345678901", "987654321"},
		{"999999999999999999", "1000001"},
	}
	for _, tc := range cases {
		rec := decodeRecord(t, `{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`",
			"makerAmount":"`+tc.maker+`","takerAmount":"`+tc.taker+`"},"metaData":{"orderHash":"0x1"}}`)
		o, err := Order(rec, OrderContext{Tokens: testTokens()})
		require.NoError(t, err)
		require.True(t, o.MakerAmount.Shift(18).Round(0).Equal(dec(tc.maker)), "maker %s", tc.maker)
		require.True(t, o.TakerAmount.Shift(6).Round(0).Equal(dec(tc.taker)), "taker %s", tc.taker)
	}
}

func TestOrderFillBounds(t *testing.T) {
	cases := []struct {
		name   string
		filled string
		want   string
	}{
		{"none", `"0"`, "0"},
		{"missing", `null`, "0"},
		{"full", `"2000000000"`, "1"},
		{"overfilled", `"3000000000"`, "1"},
		{"negative", `"-5"`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := decodeRecord(t, `{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`",
				"makerAmount":"1000000000000000000","takerAmount":"2000000000"},
				"metaData":{"orderHash":"0x1","filledAmount_takerToken":`+tc.filled+`}}`)
			o, err := Order(rec, OrderContext{Tokens: testTokens()})
			require.NoError(t, err)
			require.True(t, o.FilledTakerAmount.LessThanOrEqual(o.TakerAmount))
			require.True(t, o.FillPct.Valid)
			require.False(t, o.FillPct.Decimal.IsNegative())
			require.True(t, o.FillPct.Decimal.LessThanOrEqual(decimal.NewFromInt(1)))
			require.True(t, o.FillPct.Decimal.Equal(dec(tc.want)), "fill=%s", o.FillPct.Decimal)
		})
	}
}

func TestOrderZeroAmountsAreNull(t *testing.T) {
	rec := decodeRecord(t, `{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`",
		"makerAmount":"0","takerAmount":"0"},"metaData":{"orderHash":"0x1"}}`)
	o, err := Order(rec, OrderContext{Tokens: testTokens()})
	require.NoError(t, err)
	require.False(t, o.Price.Valid)
	require.False(t, o.FillPct.Valid)
	require.False(t, o.DiffUnfilledUSD.Valid)
	require.False(t, o.DiffPct.Valid)
	require.Equal(t, "Sell 0 WETH for 0 USDC @ n/a USDC/WETH (n/a filled)", o.Description)

	b, err := json.Marshal(o)
	require.NoError(t, err)
	require.Contains(t, string(b), `"price":null`)
}

func TestOrderDropReasons(t *testing.T) {
	unknown := decodeRecord(t, `{"order":{"makerToken":"0x9999999999999999999999999999999999999999","takerToken":"`+usdcAddr+`",
		"makerAmount":"1","takerAmount":"1"},"metaData":{"orderHash":"0x1"}}`)
	_, err := Order(unknown, OrderContext{Tokens: testTokens()})
	require.ErrorIs(t, err, ErrUnknownToken)
	require.Equal(t, "unknown_token", Reason(err))

	noHash := decodeRecord(t, `{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`","makerAmount":"1","takerAmount":"1"}}`)
	_, err = Order(noHash, OrderContext{Tokens: testTokens()})
	require.ErrorIs(t, err, ErrMissingField)

	noAmount := decodeRecord(t, `{"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`","takerAmount":"1"},"metaData":{"orderHash":"0x1"}}`)
	_, err = Order(noAmount, OrderContext{Tokens: testTokens()})
	require.ErrorIs(t, err, ErrMissingField)
	require.Equal(t, "missing_field", Reason(err))
}

func TestOrderTypeAndName(t *testing.T) {
	reg := models.NewRegistry([]models.KnownAddress{{Address: makerAddr, Name: "Wintermute", Type: models.AddressMarketMaker}})
	body := `{"order":{"maker":"` + makerAddr + `","makerToken":"` + wethAddr + `","takerToken":"` + usdcAddr + `",
		"makerAmount":"1","takerAmount":"1","expiry":1700000100},"metaData":{"orderHash":"0x1","creation":1700000000}}`

	o, err := Order(decodeRecord(t, body), OrderContext{Tokens: testTokens(), Registry: reg, FallbackName: "Unknown"})
	require.NoError(t, err)
	require.Equal(t, models.OrderTypeMarketMaker, o.OrderType)
	require.Equal(t, "Wintermute", o.Name)

	long := `{"order":{"maker":"0x3333333333333333333333333333333333333333","makerToken":"` + wethAddr + `","takerToken":"` + usdcAddr + `",
		"makerAmount":"1","takerAmount":"1","expiry":1700086400},"metaData":{"orderHash":"0x2","creation":1700000000}}`
	o, err = Order(decodeRecord(t, long), OrderContext{Tokens: testTokens(), Registry: reg, FallbackName: "Unknown"})
	require.NoError(t, err)
	require.Equal(t, models.OrderTypeLimitOrder, o.OrderType)
	require.Equal(t, "Unknown", o.Name)
}

func TestFills(t *testing.T) {
	reg := models.NewRegistry([]models.KnownAddress{{Address: keeperHex, Name: "Keeper One", Type: models.AddressKeeper}})
	var records []rook.OrderRecord
	require.NoError(t, json.Unmarshal([]byte(`[{
		"order":{"makerToken":"`+wethAddr+`","takerToken":"`+usdcAddr+`"},
		"metaData":{"orderHash":"0xabc"},
		"orderFills":[
			{"txHash":"0xt1","taker":"`+keeperHex+`","timestamp":1700000000,"blockNumber":18000000,
			 "makerTokenFilledAmount":"500000000000000000","takerTokenFilledAmount":"1000000000",
			 "gasUsed":"150000","gasPrice":"20","ethPrice":"2000"},
			{"txHash":"0xt2","taker":"0x4444444444444444444444444444444444444444","makerToken":"0x9999999999999999999999999999999999999999"},
			{"taker":"`+keeperHex+`"}
		]}]`), &records))

	fills, dropped := Fills(records, testTokens(), reg)
	require.Len(t, fills, 1)
	require.Equal(t, map[string]int{"unknown_token": 1, "missing_field": 1}, dropped)

	f := fills[0]
	require.Equal(t, "Keeper One", f.Taker)
	require.Equal(t, keeperHex, f.TakerAddress)
	require.Equal(t, uint64(18000000), f.BlockNumber)
	require.Equal(t, int64(1700000000), f.Timestamp.Unix())
	require.True(t, f.MakerAmountFilled.Equal(dec("0.5")))
	require.True(t, f.TakerAmountFilled.Equal(dec("1000")))
	require.True(t, f.MakerAmountFilledUSD.Equal(dec("1000")))
	// 150000 * 20 gwei * 2000 USD * 1e-9
	require.True(t, f.GasCostUSD.Equal(dec("6")), "gas=%s", f.GasCostUSD)
	require.Equal(t, "https://eigenphi.io/ethereum/tx/0xt1", f.Links.EigenPhi)
}

func TestFillsEmpty(t *testing.T) {
	fills, dropped := Fills(nil, testTokens(), nil)
	require.NotNil(t, fills)
	require.Empty(t, fills)
	require.Empty(t, dropped)
}

func TestOutcomeLabel(t *testing.T) {
	require.Equal(t, "Filled outside valid range", OutcomeLabel(5))
	require.Equal(t, "Unfilled", OutcomeLabel(0))
	require.Equal(t, "Unknown (42)", OutcomeLabel(42))
	require.Equal(t, "Unknown (-1)", OutcomeLabel(-1))
}

func TestBidsSortedAndResolved(t *testing.T) {
	reg := models.NewRegistry([]models.KnownAddress{{Address: keeperHex, Name: "Keeper One", Type: models.AddressKeeper}})
	var auctions []rook.Auction
	require.NoError(t, json.Unmarshal([]byte(`[
		{"auctionCreationBlockNumber":200,"bidList":[
			{"keeperIdentityAddress":"0x5555555555555555555555555555555555555555","bidId":"late","outcome":{"outcomeValue":9}}]},
		{"auctionCreationBlockNumber":100,"auctionSettlementBlockNumber":101,"bidList":[
			{"keeperIdentityAddress":"`+keeperHex+`","bidId":"a","score":"0.9","outcome":{"outcomeValue":5,"txHash":"0xs","batchCount":2}},
			{"keeperIdentityAddress":"`+keeperHex+`","bidId":"b","outcome":{"outcomeValue":0}},
			{"keeperIdentityAddress":"`+keeperHex+`","bidId":"c","outcome":{"outcomeValue":null}},
			{"keeperIdentityAddress":"`+keeperHex+`","bidId":"d"}]}
	]`), &auctions))

	bids := Bids(auctions, reg)
	require.Len(t, bids, 5)
	require.Equal(t, []string{"a", "b", "c", "d", "late"}, []string{bids[0].BidID, bids[1].BidID, bids[2].BidID, bids[3].BidID, bids[4].BidID})
	require.Equal(t, "Unfilled", bids[1].Outcome)
	require.NotNil(t, bids[1].OutcomeCode)
	require.Equal(t, 0, *bids[1].OutcomeCode)
	for _, b := range bids[2:4] {
		require.Equal(t, OutcomePending, b.Outcome, "bid %s", b.BidID)
		require.Nil(t, b.OutcomeCode, "bid %s", b.BidID)
	}
	require.Equal(t, "Keeper One", bids[0].Keeper)
	require.Equal(t, "Filled outside valid range", bids[0].Outcome)
	require.Equal(t, 2, bids[0].BatchCount)
	require.Equal(t, uint64(101), bids[0].SettlementBlock)
	require.Equal(t, "0x5555555555555555555555555555555555555555", bids[4].Keeper)
	require.Equal(t, "Unknown (9)", bids[4].Outcome)
}

func TestTokensAndIdentities(t *testing.T) {
	var raw []rook.Token
	require.NoError(t, json.Unmarshal([]byte(`[
		{"address":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48","symbol":"usdc","decimals":6,"coingecko_id":"usd-coin","latest_price":{"usd_price":"1.0"}},
		{"address":"","symbol":"X","decimals":18},
		{"address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2","symbol":"WETH"}
	]`), &raw))
	tokens, dropped := Tokens(raw)
	require.Equal(t, 2, dropped)
	require.Len(t, tokens, 1)
	require.Equal(t, usdcAddr, tokens[0].Address)
	require.Equal(t, "USDC", tokens[0].Symbol)
	require.Equal(t, int32(6), tokens[0].Decimals)

	ids := Identities([]rook.Identity{{Address: keeperHex, Name: " K "}, {Address: ""}}, models.AddressKeeper)
	require.Equal(t, []models.KnownAddress{{Address: keeperHex, Name: "K", Type: models.AddressKeeper}}, ids)
}
