// Package storage selects a persistence backend from a storage URL.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"contentcal/internal/storage/postgres"
	redisstore "contentcal/internal/storage/redis"
	"contentcal/internal/storage/sqlite"
	"contentcal/internal/store"
)

// Open returns the backend for url:
//
//	sqlite://path or a bare path   SQLite file
//	postgres://... postgresql://... PostgreSQL
//	redis://... rediss://...        Redis
//	memory://                      process memory
func Open(ctx context.Context, url string, logger *slog.Logger) (store.Persistence, error) {
	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		scheme, rest = "sqlite", url
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("opening storage", slog.String("backend", scheme))

	var (
		p   store.Persistence
		err error
	)
	switch scheme {
	case "sqlite", "file":
		p, err = sqlite.Open(rest, logger)
	case "postgres", "postgresql":
		p, err = postgres.Open(ctx, url, logger)
	case "redis", "rediss":
		p, err = redisstore.Open(ctx, url, logger)
	case "memory":
		p = store.NewMemoryPersistence()
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", scheme, err)
	}
	return p, nil
}
