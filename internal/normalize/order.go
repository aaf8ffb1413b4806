package normalize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"hidingbook/internal/client/rook"
	"hidingbook/internal/models"
)

// OrderContext carries the join tables an order row is resolved against.
type OrderContext struct {
	Tokens       *models.TokenTable
	Registry     *models.Registry
	FallbackName string
}

// Order normalizes one upstream record. It fails with ErrMissingField or
// ErrUnknownToken; callers drop the row and count the reason.
func Order(rec rook.OrderRecord, oc OrderContext) (models.Order, error) {
	raw, meta := rec.Order, rec.MetaData
	switch {
	case blank(meta.OrderHash):
		return models.Order{}, fmt.Errorf("order hash: %w", ErrMissingField)
	case blank(raw.MakerToken) || blank(raw.TakerToken):
		return models.Order{}, fmt.Errorf("order %s token address: %w", meta.OrderHash, ErrMissingField)
	case !raw.MakerAmount.Valid || !raw.TakerAmount.Valid:
		return models.Order{}, fmt.Errorf("order %s amounts: %w", meta.OrderHash, ErrMissingField)
	}

	makerTok, ok := oc.Tokens.ByAddress(raw.MakerToken)
	if !ok {
		return models.Order{}, fmt.Errorf("order %s maker token %s: %w", meta.OrderHash, raw.MakerToken, ErrUnknownToken)
	}
	takerTok, ok := oc.Tokens.ByAddress(raw.TakerToken)
	if !ok {
		return models.Order{}, fmt.Errorf("order %s taker token %s: %w", meta.OrderHash, raw.TakerToken, ErrUnknownToken)
	}

	o := models.Order{
		OrderHash:         meta.OrderHash,
		Salt:              string(raw.Salt),
		Maker:             models.NormalizeAddress(raw.Maker),
		MakerToken:        makerTok.Symbol,
		MakerTokenAddress: makerTok.Address,
		TakerToken:        takerTok.Symbol,
		TakerTokenAddress: takerTok.Address,
	}
	o.CreatedAt, _ = unixTime(meta.Creation)
	o.ExpiresAt, _ = unixTime(raw.Expiry)

	o.MakerAmount = scale(raw.MakerAmount.Decimal, makerTok.Decimals)
	o.TakerAmount = scale(raw.TakerAmount.Decimal, takerTok.Decimals)

	// Filled amount is bounded by the order size so FillPct stays in [0, 1].
	filled := scale(meta.FilledAmountTakerToken.Decimal, takerTok.Decimals)
	o.FilledTakerAmount = clamp(filled, decimal.Zero, o.TakerAmount)
	if meta.RemainingFillableAmountTakerToken.Valid {
		o.RemainingFillableTakerAmount = scale(meta.RemainingFillableAmountTakerToken.Decimal, takerTok.Decimals)
	} else {
		o.RemainingFillableTakerAmount = o.TakerAmount.Sub(o.FilledTakerAmount)
	}

	o.Price = div(o.TakerAmount, o.MakerAmount)
	o.FillPct = div(o.FilledTakerAmount, o.TakerAmount)

	o.MakerAmountUSD = o.MakerAmount.Mul(makerTok.USDPrice)
	o.MakerAmountETH = o.MakerAmount.Mul(makerTok.ETHPrice)
	o.TakerAmountUSD = o.TakerAmount.Mul(takerTok.USDPrice)
	o.TakerAmountETH = o.TakerAmount.Mul(takerTok.ETHPrice)

	o.UnfilledTakerAmount = o.RemainingFillableTakerAmount
	o.UnfilledTakerUSD = o.UnfilledTakerAmount.Mul(takerTok.USDPrice)
	o.UnfilledTakerETH = o.UnfilledTakerAmount.Mul(takerTok.ETHPrice)

	if o.FillPct.Valid {
		left := one.Sub(o.FillPct.Decimal)
		o.DiffUnfilledUSD = decimal.NewNullDecimal(o.MakerAmountUSD.Sub(o.TakerAmountUSD).Mul(left))
		o.DiffUnfilledETH = decimal.NewNullDecimal(o.MakerAmountETH.Sub(o.TakerAmountETH).Mul(left))
	}
	if pct := div(o.MakerAmountUSD, o.TakerAmountUSD); pct.Valid {
		o.DiffPct = decimal.NewNullDecimal(pct.Decimal.Sub(one))
	}

	o.OrderType = orderType(o, oc.Registry)
	o.Name = oc.Registry.NameOr(o.Maker, oc.FallbackName)
	o.Description = Describe(o)
	o.Links = models.OrderLinks{
		Etherscan: "https://etherscan.io/address/" + o.Maker + "#tokentxns",
		Nansen:    "https://pro.nansen.ai/wallet-profiler?address=" + o.Maker,
	}
	return o, nil
}

func orderType(o models.Order, reg *models.Registry) models.OrderType {
	if reg.IsType(o.Maker, models.AddressMarketMaker) {
		return models.OrderTypeMarketMaker
	}
	if !o.CreatedAt.IsZero() && !o.ExpiresAt.IsZero() && o.Lifetime() < models.AutoFillMaxLifetime {
		return models.OrderTypeAutoFill
	}
	return models.OrderTypeLimitOrder
}

// Describe renders the one-line order summary, for example
// "Sell 1 WETH for 2000 USDC @ 2000 USDC/WETH (50.00% filled)".
func Describe(o models.Order) string {
	price := "n/a"
	if o.Price.Valid {
		price = o.Price.Decimal.Round(6).String()
	}
	filled := "n/a"
	if o.FillPct.Valid {
		filled = o.FillPct.Decimal.Shift(2).StringFixed(2) + "%"
	}
	return fmt.Sprintf("Sell %s %s for %s %s @ %s %s/%s (%s filled)",
		o.MakerAmount.Round(6).String(), o.MakerToken,
		o.TakerAmount.Round(6).String(), o.TakerToken,
		price, o.TakerToken, o.MakerToken,
		filled,
	)
}
