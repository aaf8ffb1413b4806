package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hidingbook/internal/cache"
	"hidingbook/internal/models"
)

// Balance is a wallet's holding of one token. Amount is scaled by the token's
// decimals when the token is known; otherwise it is the raw integer.
type Balance struct {
	Token  string          `json:"token"`
	Symbol string          `json:"symbol,omitempty"`
	Wallet string          `json:"wallet"`
	Raw    decimal.Decimal `json:"raw"`
	Amount decimal.Decimal `json:"amount"`
	USD    decimal.Decimal `json:"usd"`
	Scaled bool            `json:"scaled"`
}

type BalanceService struct {
	Source BalanceSource
	Tokens *TokenService
	Memo   *cache.Memo
	TTL    time.Duration
}

// TokenBalance resolves token by symbol or address and reads the wallet's
// balance from the block explorer.
func (s *BalanceService) TokenBalance(ctx context.Context, token, wallet string) (Balance, error) {
	if !models.IsAddress(wallet) {
		return Balance{}, fmt.Errorf("%w: wallet %q", ErrInvalidAddress, wallet)
	}
	wallet = models.NormalizeAddress(wallet)

	out := Balance{Wallet: wallet}
	tok, err := s.Tokens.Resolve(ctx, token)
	switch {
	case err == nil:
		out.Token, out.Symbol = tok.Address, tok.Symbol
	case models.IsAddress(token):
		out.Token = models.NormalizeAddress(token)
	default:
		return Balance{}, err
	}

	raw, err := cache.Do(ctx, s.Memo, "balance", s.TTL, []string{out.Token, wallet}, func(ctx context.Context) (decimal.Decimal, error) {
		return s.Source.TokenBalance(ctx, out.Token, wallet)
	})
	if err != nil {
		return Balance{}, fmt.Errorf("token balance: %w", err)
	}
	out.Raw, out.Amount = raw, raw
	if out.Symbol != "" {
		out.Amount = raw.Shift(-tok.Decimals)
		out.USD = out.Amount.Mul(tok.USDPrice)
		out.Scaled = true
	}
	return out, nil
}
