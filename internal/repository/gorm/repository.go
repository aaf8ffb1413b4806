package gormrepository

import (
	"context"

	"gorm.io/gorm"

	"hidingbook/internal/models"
	"hidingbook/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertDepthSnapshot(ctx context.Context, item *models.DepthSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// ListDepthSnapshots returns the newest snapshots first.
func (s *Store) ListDepthSnapshots(ctx context.Context, params repository.ListSnapshotsParams) ([]models.DepthSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.DepthSnapshot{})
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("taken_at >= ?", *params.Since)
	}
	var items []models.DepthSnapshot
	if err := query.Order("taken_at DESC").Limit(normalizeLimit(params.Limit, 96)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
