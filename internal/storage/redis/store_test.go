package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/store"
)

type fakeClient struct {
	data   map[string]string
	setErr error
	closed bool
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestStore_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	fake := &fakeClient{data: map[string]string{}}
	s := New(fake, nil)

	_, err := s.Get(ctx, "app_posts_v6")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "app_posts_v6", []byte(`[]`)))
	assert.Equal(t, "[]", fake.data["contentcal:app_posts_v6"])

	got, err := s.Get(ctx, "app_posts_v6")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Close())
	assert.True(t, fake.closed)
}

func TestStore_PutError(t *testing.T) {
	boom := errors.New("READONLY")
	s := New(&fakeClient{data: map[string]string{}, setErr: boom}, nil)

	err := s.Put(context.Background(), "app_clients_v6", []byte(`[]`))
	assert.ErrorIs(t, err, boom)
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), "http://not-redis", nil)
	assert.Error(t, err)
}

func TestStore_Live(t *testing.T) {
	url := os.Getenv("CONTENTCAL_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CONTENTCAL_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put(ctx, "test_roundtrip", []byte(`{"ok":true}`)))
	got, err := s.Get(ctx, "test_roundtrip")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got))
}
