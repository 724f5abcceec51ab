// Package wishlist manages the ordered list of wishlisted book ids kept in
// a profile's key-value store.
package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/justyntemme/bookshelf/internal/storage"
)

// Key is the store key holding the JSON-encoded id list
const Key = "wishlist"

// ErrCorrupt is returned when the stored value is not a JSON integer list
var ErrCorrupt = errors.New("wishlist value is corrupt")

// Manager reads and mutates a wishlist. Every call reads the store afresh;
// nothing is cached between calls.
type Manager struct {
	store storage.Store
}

// New creates a manager over store
func New(store storage.Store) *Manager {
	return &Manager{store: store}
}

// IDs returns the wishlisted ids in insertion order. A missing key is an
// empty wishlist.
func (m *Manager) IDs() ([]int, error) {
	raw, ok, err := m.store.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("read wishlist: %w", err)
	}
	return decode(raw, ok)
}

func decode(raw string, ok bool) ([]int, error) {
	if !ok || raw == "" {
		return []int{}, nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// IsWishlisted reports whether id is on the wishlist
func (m *Manager) IsWishlisted(id int) (bool, error) {
	ids, err := m.IDs()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Toggle appends id when absent, otherwise removes its first occurrence.
// It returns the membership after the change. The read and write happen in
// one store update, so concurrent toggles never drop each other's ids.
func (m *Manager) Toggle(id int) (bool, error) {
	var added bool
	err := m.update(func(ids []int) ([]int, bool) {
		index := slices.Index(ids, id)
		added = index == -1
		if added {
			return append(ids, id), true
		}
		return slices.Delete(ids, index, index+1), true
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Remove deletes the first occurrence of id. It reports whether anything
// was removed; the store is not written when id is absent.
func (m *Manager) Remove(id int) (bool, error) {
	var removed bool
	err := m.update(func(ids []int) ([]int, bool) {
		index := slices.Index(ids, id)
		if index == -1 {
			return ids, false
		}
		removed = true
		return slices.Delete(ids, index, index+1), true
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// update applies change to the stored list atomically. A corrupt value is
// never overwritten.
func (m *Manager) update(change func(ids []int) ([]int, bool)) error {
	err := m.store.Update(Key, func(raw string, ok bool) (string, bool, error) {
		ids, err := decode(raw, ok)
		if err != nil {
			return "", false, err
		}
		next, write := change(ids)
		if !write {
			return "", false, nil
		}
		data, err := json.Marshal(next)
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	})
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return fmt.Errorf("update wishlist: %w", err)
	}
	return err
}

// Set returns the wishlisted ids as a membership set
func (m *Manager) Set() (map[int]bool, error) {
	ids, err := m.IDs()
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
