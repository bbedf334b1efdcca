package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/models"
	"contentcal/internal/store"
)

var errBackendDown = errors.New("backend down")

// flakyPersistence fails every Put while failPut is set.
type flakyPersistence struct {
	*store.MemoryPersistence
	failPut bool
	puts    int
}

func (f *flakyPersistence) Put(ctx context.Context, key string, value []byte) error {
	f.puts++
	if f.failPut {
		return errBackendDown
	}
	return f.MemoryPersistence.Put(ctx, key, value)
}

func testSeed() store.Seed {
	return store.Seed{
		Clients: []models.Client{
			{ID: "c1", Name: "Maikai Prime", ContractedPosts: 12, Status: models.ClientActive},
			{ID: "c2", Name: "CEBRAM", ContractedPosts: 8, Status: models.ClientInactive},
		},
		Posts: []models.Post{
			{ID: "p1", ClientID: "c1", Title: "Conteúdo #1", Date: models.MustDate("2026-02-02"), Status: "Roteiro"},
			{ID: "p2", ClientID: "c2", Title: "Conteúdo #2", Date: models.MustDate("2026-02-04"), Status: "Postado"},
		},
		Statuses: []models.WorkflowStatus{
			{ID: "roteiro", Label: "Roteiro"},
			{ID: "postado", Label: "Postado"},
		},
	}
}

func loadedStore(t *testing.T) (*store.Store, *store.MemoryPersistence) {
	t.Helper()
	backend := store.NewMemoryPersistence()
	s := store.New(backend, nil)
	s.Load(context.Background(), testSeed())
	return s, backend
}

func TestKeysFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, store.Keys{
		Posts:    "app_posts_v6",
		Clients:  "app_clients_v6",
		Statuses: "app_statuses_v6",
	}, store.KeysFor(""))
	assert.Equal(t, "app_clients_v7", store.KeysFor("v7").Clients)
}

func TestLoad_EmptyBackendUsesSeedAndWritesItBack(t *testing.T) {
	t.Parallel()

	s, backend := loadedStore(t)
	ctx := context.Background()

	assert.Equal(t, testSeed().Clients, s.Clients())
	assert.Equal(t, testSeed().Posts, s.Posts())
	assert.Equal(t, testSeed().Statuses, s.Statuses())

	raw, err := backend.Get(ctx, "app_clients_v6")
	require.NoError(t, err)
	var clients []models.Client
	require.NoError(t, json.Unmarshal(raw, &clients))
	assert.Equal(t, testSeed().Clients, clients)
}

func TestLoad_CorruptBlobFallsBackPerCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := store.NewMemoryPersistence()
	require.NoError(t, backend.Put(ctx, "app_posts_v6", []byte("{not json")))
	require.NoError(t, backend.Put(ctx, "app_clients_v6", []byte(`[{"id":"x","name":"Persisted","contractedPosts":4,"status":"Ativo"}]`)))

	s := store.New(backend, nil)
	s.Load(ctx, testSeed())

	require.Len(t, s.Clients(), 1)
	assert.Equal(t, "Persisted", s.Clients()[0].Name)
	assert.Equal(t, testSeed().Posts, s.Posts())
	assert.Equal(t, testSeed().Statuses, s.Statuses())
}

func TestLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, backend := loadedStore(t)
	require.NoError(t, s.AddClient(ctx, models.Client{ID: "c3", Name: "VetConcetp", ContractedPosts: 6, StartDate: models.MustDate("2026-03-01"), Status: models.ClientActive}))
	start := models.MustDate("2026-02-01")
	require.NoError(t, s.AddPost(ctx, models.Post{ID: "p3", ClientID: "c3", Title: "Reels", Date: models.MustDate("2026-03-02"), StartDate: &start, PostNumber: 3, Status: "Design", Network: models.NetworkTikTok, Format: "Reels", Copy: "legenda"}))
	require.NoError(t, s.AddStatus(ctx, models.WorkflowStatus{ID: "design", Label: "Design", ColorClass: "bg-purple-100 text-purple-700"}))

	reloaded := store.New(backend, nil)
	reloaded.Load(ctx, store.Seed{})

	assert.Equal(t, s.Clients(), reloaded.Clients())
	assert.Equal(t, s.Posts(), reloaded.Posts())
	assert.Equal(t, s.Statuses(), reloaded.Statuses())
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := loadedStore(t)

	ok, err := s.UpdateClient(ctx, models.Client{ID: "missing", Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, testSeed().Clients, s.Clients())

	ok, err = s.UpdatePost(ctx, models.Post{ID: "missing"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, testSeed().Posts, s.Posts())

	ok, err = s.UpdateStatus(ctx, models.WorkflowStatus{ID: "missing"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, testSeed().Statuses, s.Statuses())
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := loadedStore(t)

	post, ok := s.Post("p1")
	require.True(t, ok)
	post.Status = "Postado"
	post.Copy = "nova legenda"

	ok, err := s.UpdatePost(ctx, post)
	require.NoError(t, err)
	assert.True(t, ok)

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "nova legenda", posts[0].Copy)
}

func TestDelete_RemovesAtMostOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := store.NewMemoryPersistence()
	s := store.New(backend, nil)
	seed := testSeed()
	seed.Posts = append(seed.Posts, models.Post{ID: "p1", ClientID: "c1", Title: "duplicate"})
	s.Load(ctx, seed)

	ok, err := s.DeletePost(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "duplicate", posts[1].Title)

	ok, err = s.DeleteStatus(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteClient_KeepsPosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := loadedStore(t)

	ok, err := s.DeleteClient(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, found := s.Client("c1")
	assert.False(t, found)
	assert.Len(t, s.Posts(), 2)
}

func TestAppendPosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &flakyPersistence{MemoryPersistence: store.NewMemoryPersistence()}
	s := store.New(backend, nil)
	s.Load(ctx, testSeed())
	putsAfterLoad := backend.puts

	require.NoError(t, s.AppendPosts(ctx, nil))
	assert.Equal(t, putsAfterLoad, backend.puts)

	batch := []models.Post{{ID: "g1", ClientID: "c1"}, {ID: "g2", ClientID: "c1"}}
	require.NoError(t, s.AppendPosts(ctx, batch))
	assert.Equal(t, putsAfterLoad+1, backend.puts)

	posts := s.Posts()
	require.Len(t, posts, 4)
	assert.Equal(t, "g2", posts[3].ID)
}

func TestMutation_FailedWriteLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &flakyPersistence{MemoryPersistence: store.NewMemoryPersistence()}
	s := store.New(backend, nil)
	s.Load(ctx, testSeed())
	backend.failPut = true

	err := s.AddClient(ctx, models.Client{ID: "c9"})
	require.ErrorIs(t, err, errBackendDown)
	assert.Len(t, s.Clients(), 2)

	_, err = s.DeletePost(ctx, "p1")
	require.ErrorIs(t, err, errBackendDown)
	assert.Len(t, s.Posts(), 2)
}

func TestDefaultStatusLabel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := loadedStore(t)
	assert.Equal(t, "Roteiro", s.DefaultStatusLabel())

	for _, st := range s.Statuses() {
		_, err := s.DeleteStatus(ctx, st.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, models.FallbackStatusLabel, s.DefaultStatusLabel())
}

func TestDefaultStatusLabel_BlankFirstLabel(t *testing.T) {
	t.Parallel()

	s, _ := loadedStore(t)
	first := s.Statuses()[0]
	first.Label = "  "
	ok, err := s.UpdateStatus(context.Background(), first)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, models.FallbackStatusLabel, s.DefaultStatusLabel())
}

func TestUnknownStatuses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := loadedStore(t)
	assert.Empty(t, s.UnknownStatuses())

	require.NoError(t, s.AppendPosts(ctx, []models.Post{
		{ID: "a", Status: "Ideia"},
		{ID: "b", Status: "Arquivado"},
		{ID: "c", Status: "Ideia"},
	}))
	assert.Equal(t, []string{"Arquivado", "Ideia"}, s.UnknownStatuses())
}

func TestMemoryPersistence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := store.NewMemoryPersistence()

	_, err := m.Get(ctx, "k")
	assert.True(t, store.IsNotFound(err))

	value := []byte("[]")
	require.NoError(t, m.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), got)
	assert.NoError(t, m.Close())
}
