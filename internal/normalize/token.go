package normalize

import (
	"strings"

	"hidingbook/internal/client/rook"
	"hidingbook/internal/models"
)

// Tokens keeps every row that has an address and a decimal count. The second
// return value is the number of rows dropped.
func Tokens(raw []rook.Token) ([]models.Token, int) {
	out := make([]models.Token, 0, len(raw))
	dropped := 0
	for _, t := range raw {
		if blank(t.Address) || !t.Decimals.Valid || t.Decimals.IsNegative() {
			dropped++
			continue
		}
		out = append(out, models.Token{
			Address:     models.NormalizeAddress(t.Address),
			Symbol:      strings.ToUpper(strings.TrimSpace(t.Symbol)),
			Name:        strings.TrimSpace(t.Name),
			Decimals:    int32(t.Decimals.IntPart()),
			CoinGeckoID: strings.TrimSpace(t.CoinGeckoID),
			USDPrice:    t.LatestPrice.USDPrice.Decimal,
			ETHPrice:    t.LatestPrice.ETHPrice.Decimal,
		})
	}
	return out, dropped
}

// Identities tags an identity list with its registry category.
func Identities(raw []rook.Identity, typ models.AddressType) []models.KnownAddress {
	out := make([]models.KnownAddress, 0, len(raw))
	for _, id := range raw {
		if blank(id.Address) {
			continue
		}
		out = append(out, models.KnownAddress{
			Address: models.NormalizeAddress(id.Address),
			Name:    strings.TrimSpace(id.Name),
			Type:    typ,
		})
	}
	return out
}
