// Package querystate persists the catalog search term and genre filter.
// The page number is intentionally not stored.
package querystate

import (
	"fmt"

	"github.com/justyntemme/bookshelf/internal/storage"
)

// Store keys
const (
	KeySearch = "bookSearch"
	KeyGenre  = "bookGenre"
)

// Saved is the persisted part of the catalog query
type Saved struct {
	Search string `json:"search"`
	Genre  string `json:"genre"`
}

// Store reads and writes saved filters
type Store struct {
	kv storage.Store
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved filters; missing keys are empty strings
func (s *Store) Load() (Saved, error) {
	search, _, err := s.kv.Get(KeySearch)
	if err != nil {
		return Saved{}, fmt.Errorf("read search: %w", err)
	}
	genre, _, err := s.kv.Get(KeyGenre)
	if err != nil {
		return Saved{}, fmt.Errorf("read genre: %w", err)
	}
	return Saved{Search: search, Genre: genre}, nil
}

func (s *Store) SaveSearch(term string) error {
	return s.kv.Set(KeySearch, term)
}

func (s *Store) SaveGenre(genre string) error {
	return s.kv.Set(KeyGenre, genre)
}
