package storage_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/storage"
	"contentcal/internal/storage/sqlite"
	"contentcal/internal/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Memory(t *testing.T) {
	p, err := storage.Open(context.Background(), "memory://", discard())
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryPersistence{}, p)
}

func TestOpen_SQLite(t *testing.T) {
	dir := t.TempDir()

	for _, url := range []string{
		"sqlite://" + filepath.Join(dir, "a.db"),
		filepath.Join(dir, "b.db"),
	} {
		p, err := storage.Open(context.Background(), url, discard())
		require.NoError(t, err, url)
		assert.IsType(t, &sqlite.Store{}, p)
		require.NoError(t, p.Close())
	}
}

func TestOpen_UnknownScheme(t *testing.T) {
	_, err := storage.Open(context.Background(), "mongodb://localhost", discard())
	assert.ErrorContains(t, err, "unsupported storage scheme")
}
