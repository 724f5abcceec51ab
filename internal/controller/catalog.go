// Package controller holds the three page controllers: catalog listing,
// book detail and wishlist. Each owns its state explicitly and hands it to
// the view package for rendering.
package controller

import (
	"context"

	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/metrics"
	"github.com/justyntemme/bookshelf/internal/models"
	"github.com/justyntemme/bookshelf/internal/pagination"
	"github.com/justyntemme/bookshelf/internal/querystate"
	"github.com/justyntemme/bookshelf/internal/wishlist"
)

// Books is the catalog surface the controllers need
type Books interface {
	ListBooks(ctx context.Context, q catalog.Query) (*catalog.Page, error)
	GetBook(ctx context.Context, id int) (*models.Book, error)
}

// CatalogState is the result of one catalog load
type CatalogState struct {
	Query      catalog.Query
	Books      []models.Book
	Count      int
	TotalPages int
	Err        error
}

// Failed reports whether the load ended in an error
func (s CatalogState) Failed() bool {
	return s.Err != nil
}

// Form carries submitted filter values. Nil fields were not submitted.
type Form struct {
	Search *string
	Genre  *string
	Page   int
}

// Catalog drives the listing page
type Catalog struct {
	books    Books
	prefs    *querystate.Store
	wishlist *wishlist.Manager
}

func NewCatalog(books Books, prefs *querystate.Store, wl *wishlist.Manager) *Catalog {
	return &Catalog{books: books, prefs: prefs, wishlist: wl}
}

// Apply merges a submitted form into the saved filters. A changed search
// term or genre is persisted and sends the user back to page 1.
func (c *Catalog) Apply(form Form) (catalog.Query, error) {
	saved, err := c.prefs.Load()
	if err != nil {
		return catalog.Query{}, err
	}

	q := catalog.Query{Search: saved.Search, Topic: saved.Genre, Page: form.Page}
	if q.Page < 1 {
		q.Page = 1
	}

	if form.Search != nil && *form.Search != saved.Search {
		if err := c.prefs.SaveSearch(*form.Search); err != nil {
			return catalog.Query{}, err
		}
		q.Search = *form.Search
		q.Page = 1
	}
	if form.Genre != nil && *form.Genre != saved.Genre {
		if err := c.prefs.SaveGenre(*form.Genre); err != nil {
			return catalog.Query{}, err
		}
		q.Topic = *form.Genre
		q.Page = 1
	}

	return q, nil
}

// Load fetches the page described by q. A failed fetch yields an empty
// listing with zero pages and the error recorded in the state.
func (c *Catalog) Load(ctx context.Context, q catalog.Query) CatalogState {
	defer logger.Track(ctx, "catalog load")()

	page, err := c.books.ListBooks(ctx, q)
	if err != nil {
		q.Page = pagination.Clamp(q.Page, 0)
		return CatalogState{Query: q, Books: []models.Book{}, Err: err}
	}

	q.Page = pagination.Clamp(q.Page, page.TotalPages)
	return CatalogState{
		Query:      q,
		Books:      page.Books,
		Count:      page.Count,
		TotalPages: page.TotalPages,
	}
}

// Genres returns the genre options for q: the distinct bookshelves of its
// first page. A loaded first page is reused instead of fetched again; a
// failed load yields no options.
func (c *Catalog) Genres(ctx context.Context, state CatalogState) []string {
	if state.Failed() {
		return nil
	}
	if state.Query.Page == 1 {
		return GenresFrom(state.Books)
	}

	first := state.Query
	first.Page = 1
	page, err := c.books.ListBooks(ctx, first)
	if err != nil {
		return nil
	}
	return GenresFrom(page.Books)
}

// GenresFrom collects distinct bookshelves in first-seen order
func GenresFrom(books []models.Book) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, book := range books {
		for _, shelf := range book.Bookshelves {
			if !seen[shelf] {
				seen[shelf] = true
				genres = append(genres, shelf)
			}
		}
	}
	return genres
}

// Wishlisted returns the current wishlist membership for rendering cards
func (c *Catalog) Wishlisted() (map[int]bool, error) {
	return c.wishlist.Set()
}

// ToggleWishlist flips membership of id and returns the new membership
func (c *Catalog) ToggleWishlist(id int) (bool, error) {
	added, err := c.wishlist.Toggle(id)
	if err != nil {
		return false, err
	}
	if added {
		metrics.WishlistToggles.WithLabelValues("add").Inc()
	} else {
		metrics.WishlistToggles.WithLabelValues("remove").Inc()
	}
	return added, nil
}
