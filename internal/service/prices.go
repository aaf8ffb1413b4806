package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"hidingbook/internal/cache"
	"hidingbook/internal/models"
)

// Lookbacks maps the chart range selector onto the upstream day count.
var Lookbacks = map[string]string{
	"1D":  "1",
	"1W":  "7",
	"1M":  "30",
	"1Y":  "365",
	"MAX": "max",
}

// CrossRateQuery selects a cross-rate series. Target, CreatedAt and ExpiresAt
// describe the order being charted and are optional.
type CrossRateQuery struct {
	Base      string
	Quote     string
	Lookback  string
	Target    decimal.NullDecimal
	CreatedAt time.Time
	ExpiresAt time.Time
}

type PriceService struct {
	Source PriceSource
	Tokens *TokenService
	Memo   *cache.Memo
	TTL    time.Duration
	Now    func() time.Time
}

// CrossRate returns base/quote closes for timestamps present in both series,
// oldest first.
func (s *PriceService) CrossRate(ctx context.Context, q CrossRateQuery) (models.CrossRateSeries, error) {
	lookback := strings.ToUpper(strings.TrimSpace(q.Lookback))
	days, ok := Lookbacks[lookback]
	if !ok {
		return models.CrossRateSeries{}, fmt.Errorf("%w: %q", ErrInvalidLookback, q.Lookback)
	}
	base, err := s.Tokens.Resolve(ctx, q.Base)
	if err != nil {
		return models.CrossRateSeries{}, err
	}
	quote, err := s.Tokens.Resolve(ctx, q.Quote)
	if err != nil {
		return models.CrossRateSeries{}, err
	}

	var basePts, quotePts []models.PricePoint
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		basePts, err = s.history(gctx, base, days)
		return err
	})
	g.Go(func() error {
		var err error
		quotePts, err = s.history(gctx, quote, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.CrossRateSeries{}, err
	}

	out := models.CrossRateSeries{
		Base:     base.Symbol,
		Quote:    quote.Symbol,
		Lookback: lookback,
		Points:   CrossSeries(basePts, quotePts),
		Target:   q.Target,
	}
	if len(out.Points) > 0 {
		first := out.Points[0].Timestamp
		out.CreationInRange = !q.CreatedAt.IsZero() && q.CreatedAt.After(first)
		out.ExpiryInRange = !q.ExpiresAt.IsZero() && q.ExpiresAt.After(first) && !q.ExpiresAt.After(s.now())
	}
	return out, nil
}

func (s *PriceService) history(ctx context.Context, tok models.Token, days string) ([]models.PricePoint, error) {
	if tok.CoinGeckoID == "" {
		return nil, fmt.Errorf("%w: %s has no price feed", ErrUnknownToken, tok.Symbol)
	}
	return cache.Do(ctx, s.Memo, "prices", s.TTL, []string{tok.CoinGeckoID, days}, func(ctx context.Context) ([]models.PricePoint, error) {
		candles, err := s.Source.TokenPriceHistory(ctx, tok.CoinGeckoID, days)
		if err != nil {
			return nil, fmt.Errorf("fetch price history %s: %w", tok.CoinGeckoID, err)
		}
		out := make([]models.PricePoint, 0, len(candles))
		for _, c := range candles {
			out = append(out, models.PricePoint{Timestamp: c.TS, Close: c.Close})
		}
		return out, nil
	})
}

func (s *PriceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CrossSeries divides base by quote at every timestamp both series share.
// Points with a zero quote close are skipped.
func CrossSeries(base, quote []models.PricePoint) []models.PricePoint {
	quoteAt := make(map[int64]decimal.Decimal, len(quote))
	for _, p := range quote {
		quoteAt[p.Timestamp.UnixMilli()] = p.Close
	}
	out := make([]models.PricePoint, 0, len(base))
	for _, p := range base {
		q, ok := quoteAt[p.Timestamp.UnixMilli()]
		if !ok || q.IsZero() {
			continue
		}
		out = append(out, models.PricePoint{Timestamp: p.Timestamp, Close: p.Close.Div(q)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
