package repository

import (
	"context"
	"time"

	"hidingbook/internal/models"
)

// SnapshotRepository stores the periodic depth snapshots of the open book.
type SnapshotRepository interface {
	InsertDepthSnapshot(ctx context.Context, item *models.DepthSnapshot) error
	ListDepthSnapshots(ctx context.Context, params ListSnapshotsParams) ([]models.DepthSnapshot, error)
}

type ListSnapshotsParams struct {
	Limit int
	Since *time.Time
}
