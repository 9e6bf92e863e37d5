// Package db defines the key-value store contract used by the embedding
// cache. The engine itself holds no durable state; the store only memoizes
// oracle embeddings across requests.
package db

import (
	"context"
	"time"
)

// Store is the key-value store facade.
type Store interface {
	Pinger
	KVStore
	CounterStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides plain key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CounterStore provides atomic counters, used for oracle budget accounting.
type CounterStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	GetInt64(ctx context.Context, key string) (int64, error)
}
