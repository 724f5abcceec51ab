package wishlist

import (
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/bookshelf/internal/storage"
)

func newManager(t *testing.T, raw string) (*Manager, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	if raw != "" {
		require.NoError(t, store.Set(Key, raw))
	}
	return New(store), store
}

func TestIDsEmpty(t *testing.T) {
	m, _ := newManager(t, "")
	ids, err := m.IDs()
	require.NoError(t, err)
	assert.Equal(t, []int{}, ids)

	m, _ = newManager(t, "null")
	ids, err = m.IDs()
	require.NoError(t, err)
	assert.Equal(t, []int{}, ids)
}

func TestToggleScenario(t *testing.T) {
	m, store := newManager(t, "[12,45]")

	wishlisted, err := m.Toggle(45)
	require.NoError(t, err)
	assert.False(t, wishlisted)
	ids, _ := m.IDs()
	assert.Equal(t, []int{12}, ids)

	wishlisted, err = m.Toggle(45)
	require.NoError(t, err)
	assert.True(t, wishlisted)
	ids, _ = m.IDs()
	assert.Equal(t, []int{12, 45}, ids)

	raw, _, _ := store.Get(Key)
	assert.Equal(t, "[12,45]", raw)
}

func TestToggleTwiceRestoresOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		id   int
	}{
		{"absent id", "[3,1,2]", 7},
		{"present id at end", "[3,1,2]", 2},
		{"empty list", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t, tt.raw)
			before, err := m.IDs()
			require.NoError(t, err)

			_, err = m.Toggle(tt.id)
			require.NoError(t, err)
			_, err = m.Toggle(tt.id)
			require.NoError(t, err)

			after, err := m.IDs()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestIsWishlistedAfterToggle(t *testing.T) {
	m, _ := newManager(t, "")

	_, err := m.Toggle(84)
	require.NoError(t, err)
	ok, err := m.IsWishlisted(84)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = m.Toggle(84)
	require.NoError(t, err)
	ok, err = m.IsWishlisted(84)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	m, _ := newManager(t, "[1,2,3]")

	removed, err := m.Remove(2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.Remove(9)
	require.NoError(t, err)
	assert.False(t, removed)

	ids, _ := m.IDs()
	assert.Equal(t, []int{1, 3}, ids)
}

func TestRemoveFirstOccurrenceOnly(t *testing.T) {
	// duplicates only appear when the stored value was edited externally
	m, _ := newManager(t, "[5,6,5]")

	_, err := m.Toggle(5)
	require.NoError(t, err)

	ids, _ := m.IDs()
	assert.Equal(t, []int{6, 5}, ids)
}

func TestCorruptValue(t *testing.T) {
	m, store := newManager(t, "{not json")

	_, err := m.IDs()
	assert.True(t, errors.Is(err, ErrCorrupt))

	_, err = m.Toggle(1)
	assert.ErrorIs(t, err, ErrCorrupt)

	raw, _, _ := store.Get(Key)
	assert.Equal(t, "{not json", raw, "corrupt value must not be overwritten")
}

func TestSet(t *testing.T) {
	m, _ := newManager(t, "[4,8]")
	set, err := m.Set()
	require.NoError(t, err)
	assert.True(t, set[4])
	assert.True(t, set[8])
	assert.False(t, set[5])
}

func TestConcurrentTogglesKeepEveryID(t *testing.T) {
	sqlite, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "bookshelf.db"))
	require.NoError(t, err)
	defer sqlite.Close()

	m := New(storage.Scoped(sqlite, "p1"))

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			added, err := m.Toggle(id)
			assert.NoError(t, err)
			assert.True(t, added)
		}(i)
	}
	wg.Wait()

	ids, err := m.IDs()
	require.NoError(t, err)
	slices.Sort(ids)
	assert.Len(t, ids, 20)
	assert.Equal(t, 1, ids[0])
	assert.Equal(t, 20, ids[19])
}

func TestConcurrentRemoveAndToggle(t *testing.T) {
	m, _ := newManager(t, "[1,2,3,4,5,6,7,8,9,10]")

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_, err := m.Remove(id)
			assert.NoError(t, err)
		}(i)
		go func(id int) {
			defer wg.Done()
			_, err := m.Toggle(id + 100)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids, err := m.IDs()
	require.NoError(t, err)
	slices.Sort(ids)
	assert.Equal(t, []int{101, 102, 103, 104, 105, 106, 107, 108, 109, 110}, ids)
}
