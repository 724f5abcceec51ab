package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/justyntemme/bookshelf/internal/models"
)

// Common errors
var (
	ErrNotFound    = errors.New("book not found in catalog")
	ErrRateLimited = errors.New("rate limited by catalog")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Query is the filter state translated into catalog query parameters
type Query struct {
	Search string `json:"search"`
	Topic  string `json:"topic"`
	Page   int    `json:"page"`
}

// Values returns the query parameters. All three are always present,
// empty filters included.
func (q Query) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("search", q.Search)
	params.Set("topic", q.Topic)
	return params
}

// Provider defines the interface for remote catalog backends
type Provider interface {
	// Name returns the provider identifier (e.g., "gutendex")
	Name() string

	// ListBooks returns one page of books matching the query
	ListBooks(ctx context.Context, q Query) (*models.ListResponse, error)

	// GetBook returns a single book by catalog id
	GetBook(ctx context.Context, id int) (*models.Book, error)
}
