package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Persistence when no blob is stored under a key.
var ErrNotFound = errors.New("key not found")

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Persistence stores opaque JSON blobs under string keys. Every write replaces
// the whole value.
type Persistence interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// DefaultKeyVersion is the schema suffix of the persisted collection keys.
const DefaultKeyVersion = "v6"

// Keys names the three persisted collections.
type Keys struct {
	Posts    string
	Clients  string
	Statuses string
}

// KeysFor builds the collection keys for a schema version.
func KeysFor(version string) Keys {
	if version == "" {
		version = DefaultKeyVersion
	}
	return Keys{
		Posts:    "app_posts_" + version,
		Clients:  "app_clients_" + version,
		Statuses: "app_statuses_" + version,
	}
}

// MemoryPersistence keeps blobs in a map. It is safe for concurrent use.
type MemoryPersistence struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryPersistence returns an empty in-memory persistence.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{blobs: make(map[string][]byte)}
}

func (m *MemoryPersistence) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryPersistence) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryPersistence) Close() error {
	return nil
}
