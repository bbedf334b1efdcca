// Package store keeps the agency's clients, posts and workflow statuses in
// ordered in-memory collections and writes each collection through a
// Persistence whenever it changes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"contentcal/internal/models"
)

// Seed holds the collections used when nothing usable is persisted.
type Seed struct {
	Clients  []models.Client
	Posts    []models.Post
	Statuses []models.WorkflowStatus
}

// Store is the entity repository. All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	backend  Persistence
	keys     Keys
	logger   *slog.Logger
	clients  []models.Client
	posts    []models.Post
	statuses []models.WorkflowStatus
}

// Option configures a Store.
type Option func(*Store)

// WithKeys overrides the persisted collection keys.
func WithKeys(keys Keys) Option {
	return func(s *Store) { s.keys = keys }
}

// New creates an empty store on top of backend. Call Load to populate it.
func New(backend Persistence, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		backend: backend,
		keys:    KeysFor(DefaultKeyVersion),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Keys returns the collection keys in use.
func (s *Store) Keys() Keys {
	return s.keys
}

// Load reads every collection once. A missing or unreadable blob is replaced
// by the matching seed collection, which is then written back; neither case
// is an error.
func (s *Store) Load(ctx context.Context, seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seeded bool
	s.clients, seeded = loadCollection(ctx, s, s.keys.Clients, seed.Clients)
	if seeded {
		s.writeBack(ctx, s.keys.Clients, s.clients)
	}
	s.posts, seeded = loadCollection(ctx, s, s.keys.Posts, seed.Posts)
	if seeded {
		s.writeBack(ctx, s.keys.Posts, s.posts)
	}
	s.statuses, seeded = loadCollection(ctx, s, s.keys.Statuses, seed.Statuses)
	if seeded {
		s.writeBack(ctx, s.keys.Statuses, s.statuses)
	}

	s.logger.Info("store loaded",
		slog.Int("clients", len(s.clients)),
		slog.Int("posts", len(s.posts)),
		slog.Int("statuses", len(s.statuses)),
	)
}

func loadCollection[T any](ctx context.Context, s *Store, key string, fallback []T) ([]T, bool) {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Info("no persisted data, using seed", slog.String("key", key))
		} else {
			s.logger.Warn("read failed, using seed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return clone(fallback), true
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("corrupt persisted data, using seed", slog.String("key", key), slog.String("error", err.Error()))
		return clone(fallback), true
	}
	if items == nil {
		items = []T{}
	}
	return items, false
}

func (s *Store) writeBack(ctx context.Context, key string, items any) {
	if err := s.persist(ctx, key, items); err != nil {
		s.logger.Warn("unable to persist seed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Store) persist(ctx context.Context, key string, items any) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

// replace swaps the entry with the same id. The second result is false when
// no entry matches, in which case items is returned unchanged.
func replace[T any](items []T, item T, idOf func(T) string) ([]T, bool) {
	i := indexOf(items, idOf(item), idOf)
	if i < 0 {
		return items, false
	}
	out := clone(items)
	out[i] = item
	return out, true
}

// remove drops the first entry with the given id.
func remove[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	i := indexOf(items, id, idOf)
	if i < 0 {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), true
}

func clientID(c models.Client) string          { return c.ID }
func postID(p models.Post) string              { return p.ID }
func statusID(st models.WorkflowStatus) string { return st.ID }

// Clients returns a copy of the client collection in insertion order.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.clients)
}

// Client looks a client up by id.
func (s *Store) Client(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.clients, id, clientID); i >= 0 {
		return s.clients[i], true
	}
	return models.Client{}, false
}

// AddClient appends a client.
func (s *Store) AddClient(ctx context.Context, c models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(clone(s.clients), c)
	if err := s.persist(ctx, s.keys.Clients, next); err != nil {
		return err
	}
	s.clients = next
	return nil
}

// UpdateClient replaces the client with the same id. Unknown ids leave the
// collection untouched and report false.
func (s *Store) UpdateClient(ctx context.Context, c models.Client) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := replace(s.clients, c, clientID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Clients, next); err != nil {
		return false, err
	}
	s.clients = next
	return true, nil
}

// DeleteClient removes a client. Its posts are kept.
func (s *Store) DeleteClient(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := remove(s.clients, id, clientID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Clients, next); err != nil {
		return false, err
	}
	s.clients = next
	return true, nil
}

// Posts returns a copy of the post collection in insertion order.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.posts)
}

// Post looks a post up by id.
func (s *Store) Post(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.posts, id, postID); i >= 0 {
		return s.posts[i], true
	}
	return models.Post{}, false
}

// AddPost appends a single post.
func (s *Store) AddPost(ctx context.Context, p models.Post) error {
	return s.AppendPosts(ctx, []models.Post{p})
}

// AppendPosts appends a generated batch in one write.
func (s *Store) AppendPosts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Post, 0, len(s.posts)+len(posts))
	next = append(next, s.posts...)
	next = append(next, posts...)
	if err := s.persist(ctx, s.keys.Posts, next); err != nil {
		return err
	}
	s.posts = next
	return nil
}

// UpdatePost replaces the post with the same id.
func (s *Store) UpdatePost(ctx context.Context, p models.Post) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := replace(s.posts, p, postID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Posts, next); err != nil {
		return false, err
	}
	s.posts = next
	return true, nil
}

// DeletePost removes a post.
func (s *Store) DeletePost(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := remove(s.posts, id, postID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Posts, next); err != nil {
		return false, err
	}
	s.posts = next
	return true, nil
}

// Statuses returns the workflow in order; the first entry is the default.
func (s *Store) Statuses() []models.WorkflowStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.statuses)
}

// Status looks a status up by id.
func (s *Store) Status(id string) (models.WorkflowStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.statuses, id, statusID); i >= 0 {
		return s.statuses[i], true
	}
	return models.WorkflowStatus{}, false
}

// AddStatus appends a status at the end of the workflow.
func (s *Store) AddStatus(ctx context.Context, st models.WorkflowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(clone(s.statuses), st)
	if err := s.persist(ctx, s.keys.Statuses, next); err != nil {
		return err
	}
	s.statuses = next
	return nil
}

// UpdateStatus replaces the status with the same id. Posts keep the label
// they were given.
func (s *Store) UpdateStatus(ctx context.Context, st models.WorkflowStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := replace(s.statuses, st, statusID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Statuses, next); err != nil {
		return false, err
	}
	s.statuses = next
	return true, nil
}

// DeleteStatus removes a status from the workflow.
func (s *Store) DeleteStatus(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := remove(s.statuses, id, statusID)
	if !ok {
		return false, nil
	}
	if err := s.persist(ctx, s.keys.Statuses, next); err != nil {
		return false, err
	}
	s.statuses = next
	return true, nil
}

// DefaultStatusLabel is the label given to new posts.
func (s *Store) DefaultStatusLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.statuses) == 0 || strings.TrimSpace(s.statuses[0].Label) == "" {
		return models.FallbackStatusLabel
	}
	return s.statuses[0].Label
}

// UnknownStatuses lists, sorted, the post status labels that no configured
// workflow status carries.
func (s *Store) UnknownStatuses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	known := make(map[string]struct{}, len(s.statuses))
	for _, st := range s.statuses {
		known[st.Label] = struct{}{}
	}
	seen := map[string]struct{}{}
	var unknown []string
	for _, p := range s.posts {
		if _, ok := known[p.Status]; ok {
			continue
		}
		if _, ok := seen[p.Status]; ok {
			continue
		}
		seen[p.Status] = struct{}{}
		unknown = append(unknown, p.Status)
	}
	sort.Strings(unknown)
	return unknown
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
