// Package storage caches upstream archive payloads. Hansard and inquiry records
// never change once published, so their raw JSON can be kept across restarts.
package storage

import (
	"context"
	"time"
)

// Cache stores raw upstream responses keyed by request path.
type Cache interface {
	// Get returns the body stored under key. Entries older than the cache TTL
	// are reported as missing.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error

	Count(ctx context.Context) (int64, error)
	// Purge removes every entry and returns how many were removed.
	Purge(ctx context.Context) (int64, error)

	Close() error
}

// Entry describes one cached payload.
type Entry struct {
	Key       string
	Size      int
	FetchedAt time.Time
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Put(context.Context, string, []byte) error         { return nil }
func (NopCache) Count(context.Context) (int64, error)              { return 0, nil }
func (NopCache) Purge(context.Context) (int64, error)              { return 0, nil }
func (NopCache) Close() error                                      { return nil }
