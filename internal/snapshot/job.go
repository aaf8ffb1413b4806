// Package snapshot archives the depth of the open order book on a schedule.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"hidingbook/internal/analytics"
	"hidingbook/internal/logger"
	"hidingbook/internal/models"
	"hidingbook/internal/repository"
	"hidingbook/internal/service"
)

type OpenOrders interface {
	Open(ctx context.Context) (service.OrderResult, error)
}

type Job struct {
	Orders OpenOrders
	Repo   repository.SnapshotRepository
	Logger *zap.Logger
	Now    func() time.Time
}

// Run takes one snapshot and stores it.
func (j *Job) Run(ctx context.Context) error {
	res, err := j.Orders.Open(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: load open orders: %w", err)
	}
	snap, err := Build(res, j.now())
	if err != nil {
		return err
	}
	if err := j.Repo.InsertDepthSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("snapshot: insert: %w", err)
	}
	logger.OrNop(j.Logger).Info("depth snapshot stored",
		zap.Int("orders", snap.OrderCount),
		zap.Int("dropped", snap.Dropped),
		zap.String("maker_usd", snap.TotalMakerUSD.StringFixed(2)),
	)
	return nil
}

func (j *Job) now() time.Time {
	if j.Now != nil {
		return j.Now().UTC()
	}
	return time.Now().UTC()
}

// Build computes token depth and size buckets for a batch of open orders.
func Build(res service.OrderResult, at time.Time) (*models.DepthSnapshot, error) {
	depth := analytics.DepthByToken(res.Orders)
	maker, taker := analytics.DepthTotals(depth)

	byToken, err := json.Marshal(depth)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode depth: %w", err)
	}
	bySize, err := json.Marshal(analytics.SizeBuckets(res.Orders))
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode sizes: %w", err)
	}
	return &models.DepthSnapshot{
		TakenAt:       at,
		OrderCount:    len(res.Orders),
		Dropped:       res.DroppedTotal(),
		TotalMakerUSD: maker,
		TotalTakerUSD: taker,
		ByToken:       datatypes.JSON(byToken),
		BySize:        datatypes.JSON(bySize),
	}, nil
}
