package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hidingbook/internal/cache"
	"hidingbook/internal/client/rook"
	"hidingbook/internal/logger"
	"hidingbook/internal/metrics"
	"hidingbook/internal/models"
	"hidingbook/internal/normalize"
)

// OrderResult is a normalized batch of orders plus the count of upstream
// records that were dropped, keyed by reason.
type OrderResult struct {
	Orders  []models.Order `json:"orders"`
	Dropped map[string]int `json:"dropped"`
	Pages   int            `json:"pages"`
}

// DroppedTotal sums every drop reason.
func (r OrderResult) DroppedTotal() int {
	return sumDrops(r.Dropped)
}

type OrderService struct {
	Source   OrderSource
	Tokens   *TokenService
	Registry *RegistryService
	Memo     *cache.Memo
	Logger   *zap.Logger

	OpenTTL      time.Duration
	HistoryTTL   time.Duration
	PageSize     int
	MaxPages     int
	FallbackName string
}

// Open returns every currently open order on the book.
func (s *OrderService) Open(ctx context.Context) (OrderResult, error) {
	return cache.Do(ctx, s.Memo, "orders.open", s.OpenTTL, nil, func(ctx context.Context) (OrderResult, error) {
		page, err := s.Source.OpenOrders(ctx)
		if err != nil {
			return OrderResult{}, fmt.Errorf("fetch open orders: %w", err)
		}
		res, err := s.normalize(ctx, "open", page.Records, page.Skipped)
		res.Pages = 1
		return res, err
	})
}

// History returns the past orders of one or more maker wallets. Pages of
// PageSize are requested until a page comes back short. An empty or
// malformed payload yields no orders rather than an error.
func (s *OrderService) History(ctx context.Context, addresses ...string) (OrderResult, error) {
	makers, err := CleanAddresses(addresses)
	if err != nil {
		return OrderResult{}, err
	}
	return cache.Do(ctx, s.Memo, "orders.history", s.HistoryTTL, makers, func(ctx context.Context) (OrderResult, error) {
		return s.fetchHistory(ctx, makers)
	})
}

func (s *OrderService) fetchHistory(ctx context.Context, makers []string) (OrderResult, error) {
	log := logger.OrNop(s.Logger)
	limit := s.PageSize
	if limit <= 0 {
		limit = 100
	}
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = 50
	}

	var records []rook.OrderRecord
	skipped, pages, full := 0, 0, false
	for offset := 0; pages < maxPages; offset += limit {
		page, err := s.Source.OrderHistory(ctx, makers, limit, offset)
		if errors.Is(err, rook.ErrMalformedPayload) {
			log.Warn("order history payload malformed", zap.Strings("makers", makers), zap.Int("offset", offset), zap.Error(err))
			full = false
			break
		}
		if err != nil {
			return OrderResult{}, fmt.Errorf("fetch order history offset=%d: %w", offset, err)
		}
		pages++
		records = append(records, page.Records...)
		skipped += page.Skipped
		if full = page.Len() >= limit; !full {
			break
		}
	}
	if full {
		log.Warn("order history page cap reached", zap.Strings("makers", makers), zap.Int("pages", pages))
	}

	res, err := s.normalize(ctx, "history", records, skipped)
	res.Pages = pages
	return res, err
}

func (s *OrderService) normalize(ctx context.Context, stage string, records []rook.OrderRecord, skipped int) (OrderResult, error) {
	res := OrderResult{Orders: []models.Order{}, Dropped: map[string]int{}}
	if skipped > 0 {
		res.Dropped["undecodable"] = skipped
	}
	if len(records) == 0 {
		s.countDrops(stage, res.Dropped)
		return res, nil
	}

	tokens, err := s.Tokens.Load(ctx)
	if err != nil {
		return OrderResult{}, err
	}
	// Names are cosmetic. Without a registry orders render with the fallback.
	reg := loadRegistry(ctx, s.Registry, s.Logger)

	oc := normalize.OrderContext{Tokens: tokens, Registry: reg, FallbackName: s.fallback()}
	for _, rec := range records {
		o, err := normalize.Order(rec, oc)
		if err != nil {
			res.Dropped[normalize.Reason(err)]++
			continue
		}
		res.Orders = append(res.Orders, o)
	}
	s.countDrops(stage, res.Dropped)
	return res, nil
}

func (s *OrderService) countDrops(stage string, dropped map[string]int) {
	for reason, n := range dropped {
		metrics.DroppedRecords.WithLabelValues("orders."+stage, reason).Add(float64(n))
	}
	if sumDrops(dropped) > 0 {
		logger.OrNop(s.Logger).Info("order rows dropped", zap.String("stage", stage), zap.Any("reasons", dropped))
	}
}

func (s *OrderService) fallback() string {
	if s.FallbackName == "" {
		return "Unknown"
	}
	return s.FallbackName
}

// CleanAddresses splits comma separated input, validates every entry as a
// hex address and returns them lower-cased without duplicates.
func CleanAddresses(in []string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !models.IsAddress(part) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, part)
			}
			addr := models.NormalizeAddress(part)
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			out = append(out, addr)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one wallet address is required", ErrInvalidAddress)
	}
	return out, nil
}
