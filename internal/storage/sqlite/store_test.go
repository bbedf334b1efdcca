package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/storage/sqlite"
	"contentcal/internal/store"
)

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "contentcal.db")

	s, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "app_posts_v6")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "app_posts_v6", []byte(`[{"id":"p1"}]`)))
	require.NoError(t, s.Put(ctx, "app_posts_v6", []byte(`[{"id":"p2"}]`)))

	got, err := s.Get(ctx, "app_posts_v6")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p2"}]`, string(got))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contentcal.db")

	s, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "app_clients_v6", []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, "app_clients_v6")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := sqlite.Open("", nil)
	assert.Error(t, err)
}

func TestStore_BacksEntityStore(t *testing.T) {
	ctx := context.Background()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "contentcal.db"), nil)
	require.NoError(t, err)

	entities := store.New(s, nil)
	t.Cleanup(func() { _ = entities.Close() })
	entities.Load(ctx, store.Seed{})
	require.NoError(t, entities.AppendPosts(ctx, nil))

	raw, err := s.Get(ctx, entities.Keys().Statuses)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
