package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hidingbook/internal/config"
)

// ErrNotConfigured is returned by Open when no DSN is set. The archive is
// optional and callers treat this as "run without a database".
var ErrNotConfigured = errors.New("database not configured")

type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

func Open(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	if cfg.DSN == "" {
		return nil, ErrNotConfigured
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: NowUTC,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	d := &DB{Gorm: gdb, SQL: sqldb}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if cfg.Timezone != "" {
		if err := gdb.WithContext(ctx).Exec("SET TIME ZONE '" + strings.ReplaceAll(cfg.Timezone, "'", "''") + "'").Error; err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("set timezone: %w", err)
		}
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

// Ping is a no-op on a nil DB so readiness checks work without an archive.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.PingContext(ctx)
}

func NowUTC() time.Time {
	return time.Now().UTC()
}
