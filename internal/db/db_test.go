package db

import (
	"context"
	"errors"
	"testing"

	"hidingbook/internal/config"
)

func TestOpenWithoutDSN(t *testing.T) {
	d, err := Open(context.Background(), config.DBConfig{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v want ErrNotConfigured", err)
	}
	if d != nil {
		t.Fatalf("db=%v want nil", d)
	}
}

func TestNilDBIsSafe(t *testing.T) {
	var d *DB
	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := AutoMigrate(context.Background(), d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
