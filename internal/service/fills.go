package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"hidingbook/internal/cache"
	"hidingbook/internal/logger"
	"hidingbook/internal/metrics"
	"hidingbook/internal/models"
	"hidingbook/internal/normalize"
)

// FillResult is the normalized fills of one order plus the count of upstream
// rows that were dropped, keyed by reason.
type FillResult struct {
	Fills   []models.Fill  `json:"fills"`
	Dropped map[string]int `json:"dropped"`
}

func (r FillResult) DroppedTotal() int {
	return sumDrops(r.Dropped)
}

// BidResult is the keeper bids of one order plus the count of undecodable
// upstream rows.
type BidResult struct {
	Bids    []models.AuctionBid `json:"bids"`
	Dropped map[string]int      `json:"dropped"`
}

func (r BidResult) DroppedTotal() int {
	return sumDrops(r.Dropped)
}

type FillService struct {
	Source   FillSource
	Tokens   *TokenService
	Registry *RegistryService
	Memo     *cache.Memo
	TTL      time.Duration
	Logger   *zap.Logger
}

// Fills returns the settlements of one order. No fills is a valid result;
// rows that could not be decoded or normalized are reported in Dropped.
func (s *FillService) Fills(ctx context.Context, orderHash string) (FillResult, error) {
	orderHash = strings.ToLower(strings.TrimSpace(orderHash))
	if orderHash == "" {
		return FillResult{}, fmt.Errorf("%w: order hash is required", ErrInvalidOrderHash)
	}
	return cache.Do(ctx, s.Memo, "fills", s.TTL, []string{orderHash}, func(ctx context.Context) (FillResult, error) {
		page, err := s.Source.OrderFills(ctx, orderHash)
		if err != nil {
			return FillResult{}, fmt.Errorf("fetch fills %s: %w", orderHash, err)
		}
		res := FillResult{Fills: []models.Fill{}, Dropped: map[string]int{}}
		if page.Skipped > 0 {
			res.Dropped["undecodable"] = page.Skipped
		}
		if len(page.Records) > 0 {
			tokens, err := s.Tokens.Load(ctx)
			if err != nil {
				return FillResult{}, err
			}
			reg := loadRegistry(ctx, s.Registry, s.Logger)
			var dropped map[string]int
			res.Fills, dropped = normalize.Fills(page.Records, tokens, reg)
			for reason, n := range dropped {
				res.Dropped[reason] += n
			}
		}
		recordDrops(s.Logger, "fills", orderHash, res.Dropped)
		return res, nil
	})
}

type AuctionService struct {
	Source   AuctionSource
	Registry *RegistryService
	Memo     *cache.Memo
	TTL      time.Duration
	Logger   *zap.Logger
}

// Bids returns every keeper bid for one order, oldest auction first.
func (s *AuctionService) Bids(ctx context.Context, orderHash string) (BidResult, error) {
	orderHash = strings.ToLower(strings.TrimSpace(orderHash))
	if orderHash == "" {
		return BidResult{}, fmt.Errorf("%w: order hash is required", ErrInvalidOrderHash)
	}
	return cache.Do(ctx, s.Memo, "auctions", s.TTL, []string{orderHash}, func(ctx context.Context) (BidResult, error) {
		page, err := s.Source.Auctions(ctx, orderHash)
		if err != nil {
			return BidResult{}, fmt.Errorf("fetch auctions %s: %w", orderHash, err)
		}
		res := BidResult{Bids: []models.AuctionBid{}, Dropped: map[string]int{}}
		if page.Skipped > 0 {
			res.Dropped["undecodable"] = page.Skipped
		}
		if len(page.Auctions) > 0 {
			res.Bids = normalize.Bids(page.Auctions, loadRegistry(ctx, s.Registry, s.Logger))
		}
		recordDrops(s.Logger, "auctions", orderHash, res.Dropped)
		return res, nil
	})
}

func recordDrops(log *zap.Logger, stage, orderHash string, dropped map[string]int) {
	for reason, n := range dropped {
		metrics.DroppedRecords.WithLabelValues(stage, reason).Add(float64(n))
	}
	if len(dropped) > 0 {
		logger.OrNop(log).Info("rows dropped", zap.String("stage", stage), zap.String("order_hash", orderHash), zap.Any("reasons", dropped))
	}
}

func sumDrops(dropped map[string]int) int {
	n := 0
	for _, c := range dropped {
		n += c
	}
	return n
}

// loadRegistry returns nil when the registry cannot be loaded. Callers fall
// back to raw addresses.
func loadRegistry(ctx context.Context, rs *RegistryService, log *zap.Logger) *models.Registry {
	if rs == nil {
		return nil
	}
	reg, err := rs.Load(ctx)
	if err != nil {
		logger.OrNop(log).Warn("registry unavailable", zap.Error(err))
		return nil
	}
	return reg
}
