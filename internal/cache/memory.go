package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type memItem struct {
	v       []byte
	expires time.Time
}

// MemoryStore keeps entries in process. Expired entries are removed lazily on
// read.
type MemoryStore struct {
	items *xsync.MapOf[string, memItem]
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock is used by tests to drive expiry.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{items: xsync.NewMapOf[string, memItem](), now: now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, ok := s.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	if !it.expires.IsZero() && !s.now().Before(it.expires) {
		s.items.Delete(key)
		return nil, false, nil
	}
	return clone(it.v), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	it := memItem{v: clone(value)}
	if ttl > 0 {
		it.expires = s.now().Add(ttl)
	}
	s.items.Store(key, it)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

func (s *MemoryStore) Len() int {
	return s.items.Size()
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
