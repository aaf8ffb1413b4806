package normalize

import (
	"fmt"

	"hidingbook/internal/client/rook"
	"hidingbook/internal/models"
)

// Fill normalizes one settlement. Token addresses missing on the fill are
// taken from the parent order.
func Fill(f rook.Fill, parent rook.Order, tokens *models.TokenTable, reg *models.Registry) (models.Fill, error) {
	if blank(f.TxHash) {
		return models.Fill{}, fmt.Errorf("fill tx hash: %w", ErrMissingField)
	}
	makerAddr, takerAddr := f.MakerToken, f.TakerToken
	if blank(makerAddr) {
		makerAddr = parent.MakerToken
	}
	if blank(takerAddr) {
		takerAddr = parent.TakerToken
	}
	makerTok, ok := tokens.ByAddress(makerAddr)
	if !ok {
		return models.Fill{}, fmt.Errorf("fill %s maker token %q: %w", f.TxHash, makerAddr, ErrUnknownToken)
	}
	takerTok, ok := tokens.ByAddress(takerAddr)
	if !ok {
		return models.Fill{}, fmt.Errorf("fill %s taker token %q: %w", f.TxHash, takerAddr, ErrUnknownToken)
	}

	taker := models.NormalizeAddress(f.Taker)
	out := models.Fill{
		TxHash:       f.TxHash,
		Taker:        reg.NameOr(taker, taker),
		TakerAddress: taker,
		BlockNumber:  uintOf(f.BlockNumber),
		MakerToken:   makerTok.Symbol,
		TakerToken:   takerTok.Symbol,
		GasUsed:      f.GasUsed.Decimal,
		GasPrice:     f.GasPrice.Decimal,
		ETHPrice:     f.ETHPrice.Decimal,
		Links: models.TxLinks{
			Etherscan: "https://etherscan.io/tx/" + f.TxHash,
			EigenPhi:  "https://eigenphi.io/ethereum/tx/" + f.TxHash,
		},
	}
	out.Timestamp, _ = unixTime(f.Timestamp)
	out.MakerAmountFilled = scale(f.MakerTokenFilledAmount.Decimal, makerTok.Decimals)
	out.TakerAmountFilled = scale(f.TakerTokenFilledAmount.Decimal, takerTok.Decimals)
	out.MakerAmountFilledUSD = out.MakerAmountFilled.Mul(makerTok.USDPrice)
	out.TakerAmountFilledUSD = out.TakerAmountFilled.Mul(takerTok.USDPrice)
	// gas price is quoted in gwei
	out.GasCostUSD = out.GasUsed.Mul(out.GasPrice).Mul(out.ETHPrice).Mul(gweiToEth)
	return out, nil
}

// Fills flattens the fills nested under each order record. Rows that fail to
// normalize are counted, not returned.
func Fills(records []rook.OrderRecord, tokens *models.TokenTable, reg *models.Registry) ([]models.Fill, map[string]int) {
	out := []models.Fill{}
	dropped := map[string]int{}
	for _, rec := range records {
		for _, f := range rec.OrderFills {
			row, err := Fill(f, rec.Order, tokens, reg)
			if err != nil {
				dropped[Reason(err)]++
				continue
			}
			out = append(out, row)
		}
	}
	return out, dropped
}
