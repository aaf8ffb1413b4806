package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"hidingbook/internal/logger"
	"hidingbook/internal/metrics"
)

// DefaultLoadTimeout bounds a shared load once it is detached from the
// caller that started it.
const DefaultLoadTimeout = 60 * time.Second

// Memo memoizes fetch results in a Store keyed by function name and
// arguments. Values are stored as JSON and expire after the ttl given per
// call. Errors are never cached.
type Memo struct {
	store  Store
	sf     singleflight.Group
	logger *zap.Logger

	loadTimeout time.Duration
}

func NewMemo(store Store, log *zap.Logger) *Memo {
	return &Memo{store: store, logger: logger.OrNop(log), loadTimeout: DefaultLoadTimeout}
}

// Key builds the cache key for fn called with args.
func Key(fn string, args ...string) string {
	escaped := make([]string, len(args))
	for i, a := range args {
		escaped[i] = strings.ReplaceAll(a, "|", `\|`)
	}
	return fn + "(" + strings.Join(escaped, "|") + ")"
}

// Invalidate drops the memoized result of fn(args...).
func (m *Memo) Invalidate(ctx context.Context, fn string, args ...string) error {
	if m == nil || m.store == nil {
		return nil
	}
	return m.store.Delete(ctx, Key(fn, args...))
}

// Do returns the memoized value of fn(args...) or calls load and stores its
// result for ttl. Concurrent misses for the same key share one load. The
// shared load keeps the first caller's values but not its cancellation, so a
// caller that goes away only abandons its own wait.
func Do[T any](ctx context.Context, m *Memo, fn string, ttl time.Duration, args []string, load func(context.Context) (T, error)) (T, error) {
	if m == nil || m.store == nil {
		return load(ctx)
	}
	key := Key(fn, args...)

	raw, found, err := m.store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(fn, "error").Inc()
		m.logger.Warn("memo cache read failed", zap.String("key", key), zap.Error(err))
	case found:
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			metrics.CacheLookups.WithLabelValues(fn, "hit").Inc()
			return out, nil
		}
		m.logger.Warn("memo cache entry undecodable", zap.String("key", key))
	default:
		metrics.CacheLookups.WithLabelValues(fn, "miss").Inc()
	}

	ch := m.sf.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.loadTimeout)
		defer cancel()
		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("memo encode %s: %w", fn, err)
		}
		if err := m.store.Set(loadCtx, key, b, ttl); err != nil {
			m.logger.Warn("memo cache write failed", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
