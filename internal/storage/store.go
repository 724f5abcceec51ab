// Package storage provides the small key-value store that backs per-profile
// state: saved filters and the wishlist.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a string key-value store. Get reports ok=false for missing keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Update runs fn on the current value of key and stores its result,
	// atomically with respect to every other write to the store.
	Update(key string, fn UpdateFunc) error
}

// UpdateFunc derives the new value of a key from its current one. The new
// value is written only when write is true; an error aborts the update.
type UpdateFunc func(old string, ok bool) (value string, write bool, err error)

// Backend is a Store that owns resources
type Backend interface {
	Store
	Close() error
}

// Drivers accepted by Open
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open creates the backend selected by driver. File backends create the
// parent directory of path.
func Open(driver, path string) (Backend, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == DriverMemory {
		return NewMemoryStore(), nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	switch driver {
	case DriverSQLite, "":
		return NewSQLiteStore(path)
	case DriverBolt:
		return NewBoltStore(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// MemoryStore keeps values in a map. Used for tests and ephemeral runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Update(key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.data[key]
	value, write, err := fn(old, ok)
	if err != nil || !write {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// scopedStore namespaces every key under a profile id
type scopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a view of store in which all keys belong to profileID
func Scoped(store Store, profileID string) Store {
	return &scopedStore{inner: store, prefix: "profile:" + profileID + ":"}
}

func (s *scopedStore) Get(key string) (string, bool, error) {
	return s.inner.Get(s.prefix + key)
}

func (s *scopedStore) Set(key, value string) error {
	return s.inner.Set(s.prefix+key, value)
}

func (s *scopedStore) Update(key string, fn UpdateFunc) error {
	return s.inner.Update(s.prefix+key, fn)
}
