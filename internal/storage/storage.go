// Package storage holds the key/value backends that persist wellness records.
// Every value is an opaque JSON document; schema checks live with the callers.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: record not found")

// Backend is a flat key/value store. Writes are last-writer-wins.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver      string // memory, sqlite, postgres, redis
	DatabaseURL string
	SQLitePath  string
	Redis       RedisOptions
}

// Open returns the backend named by opts.Driver. An empty driver means memory.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(opts.SQLitePath)
	case "postgres":
		return NewPostgres(ctx, opts.DatabaseURL)
	case "redis":
		return NewRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
