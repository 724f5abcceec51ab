package controller

import (
	"context"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/metrics"
	"github.com/justyntemme/bookshelf/internal/models"
	"github.com/justyntemme/bookshelf/internal/wishlist"
)

// WishlistState is the result of one wishlist load
type WishlistState struct {
	IDs    []int
	Books  []models.Book
	Missed []int // ids whose fetch failed
	Filter string
	Err    error
}

// Empty reports whether nothing is wishlisted
func (s WishlistState) Empty() bool {
	return s.Err == nil && len(s.IDs) == 0
}

// Wishlist drives the wishlist page
type Wishlist struct {
	books    Books
	wishlist *wishlist.Manager
}

func NewWishlist(books Books, wl *wishlist.Manager) *Wishlist {
	return &Wishlist{books: books, wishlist: wl}
}

// Load fetches every wishlisted book one at a time, in wishlist order.
// Books that fail to load are skipped. A non-empty filter keeps only books
// whose title or authors fuzzily match it.
func (w *Wishlist) Load(ctx context.Context, filter string) WishlistState {
	defer logger.Track(ctx, "wishlist load")()

	state := WishlistState{Filter: strings.TrimSpace(filter)}

	ids, err := w.wishlist.IDs()
	if err != nil {
		logger.For(ctx).WithError(err).Error("Error reading wishlist")
		state.Err = err
		return state
	}
	state.IDs = ids

	books := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		book, err := w.books.GetBook(ctx, id)
		if err != nil {
			state.Missed = append(state.Missed, id)
			continue
		}
		books = append(books, *book)
	}

	state.Books = FilterBooks(books, state.Filter)
	return state
}

// Remove drops id from the wishlist
func (w *Wishlist) Remove(id int) (bool, error) {
	removed, err := w.wishlist.Remove(id)
	if err != nil {
		return false, err
	}
	if removed {
		metrics.WishlistToggles.WithLabelValues("remove").Inc()
	}
	return removed, nil
}

// FilterBooks keeps books whose title or author names fuzzily contain
// filter, case- and accent-insensitively
func FilterBooks(books []models.Book, filter string) []models.Book {
	if filter == "" {
		return books
	}
	matched := make([]models.Book, 0, len(books))
	for _, book := range books {
		if fuzzy.MatchNormalizedFold(filter, book.Title) || fuzzy.MatchNormalizedFold(filter, book.AuthorNames()) {
			matched = append(matched, book)
		}
	}
	return matched
}
