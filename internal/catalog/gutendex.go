package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/justyntemme/bookshelf/internal/models"
)

// DefaultBaseURL is the public Gutendex books endpoint
const DefaultBaseURL = "https://gutendex.com/books"

// GutendexProvider implements the Provider interface for the Gutendex API
type GutendexProvider struct {
	client  *http.Client
	baseURL string
}

// NewGutendexProvider creates a new Gutendex provider. An empty baseURL
// selects DefaultBaseURL.
func NewGutendexProvider(baseURL string, timeout time.Duration) *GutendexProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GutendexProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the provider identifier
func (p *GutendexProvider) Name() string {
	return "gutendex"
}

// ListURL returns the request URL for a listing query
func (p *GutendexProvider) ListURL(q Query) string {
	return p.baseURL + "?" + q.Values().Encode()
}

// BookURL returns the request URL for a single book
func (p *GutendexProvider) BookURL(id int) string {
	return p.baseURL + "/" + strconv.Itoa(id)
}

// ListBooks fetches one page of books matching q
func (p *GutendexProvider) ListBooks(ctx context.Context, q Query) (*models.ListResponse, error) {
	var data models.ListResponse
	if err := p.getJSON(ctx, p.ListURL(q), &data); err != nil {
		return nil, err
	}
	if data.Results == nil {
		data.Results = []models.Book{}
	}
	return &data, nil
}

// GetBook fetches a single book by id
func (p *GutendexProvider) GetBook(ctx context.Context, id int) (*models.Book, error) {
	var book models.Book
	if err := p.getJSON(ctx, p.BookURL(id), &book); err != nil {
		return nil, err
	}
	// The API answers unknown ids on some mirrors with an object lacking an id
	if book.ID == 0 {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (p *GutendexProvider) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
