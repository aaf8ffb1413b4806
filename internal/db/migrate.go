package db

import (
	"context"

	"hidingbook/internal/models"
)

func AutoMigrate(ctx context.Context, d *DB) error {
	if d == nil || d.Gorm == nil {
		return nil
	}
	return d.Gorm.WithContext(ctx).AutoMigrate(&models.DepthSnapshot{})
}
