package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hidingbook/internal/cache"
	"hidingbook/internal/logger"
	"hidingbook/internal/metrics"
	"hidingbook/internal/models"
	"hidingbook/internal/normalize"
)

type TokenService struct {
	Source TokenSource
	Memo   *cache.Memo
	TTL    time.Duration
	Logger *zap.Logger
}

// Load returns the token reference table. A failed fetch is returned as is;
// there is no retry.
func (s *TokenService) Load(ctx context.Context) (*models.TokenTable, error) {
	tokens, err := cache.Do(ctx, s.Memo, "tokens", s.TTL, nil, func(ctx context.Context) ([]models.Token, error) {
		raw, skipped, err := s.Source.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		out, dropped := normalize.Tokens(raw)
		if n := skipped + dropped; n > 0 {
			metrics.DroppedRecords.WithLabelValues("tokens", "invalid").Add(float64(n))
			logger.OrNop(s.Logger).Warn("token rows dropped", zap.Int("count", n))
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	return models.NewTokenTable(tokens), nil
}

// Resolve looks a token up by symbol, falling back to address.
func (s *TokenService) Resolve(ctx context.Context, ref string) (models.Token, error) {
	table, err := s.Load(ctx)
	if err != nil {
		return models.Token{}, err
	}
	if tok, ok := table.BySymbol(ref); ok {
		return tok, nil
	}
	if tok, ok := table.ByAddress(ref); ok {
		return tok, nil
	}
	return models.Token{}, fmt.Errorf("%w: %q", ErrUnknownToken, ref)
}
