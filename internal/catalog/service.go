package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/metrics"
	"github.com/justyntemme/bookshelf/internal/models"
	"github.com/justyntemme/bookshelf/internal/pagination"
)

// Page is one page of results with the derived page count
type Page struct {
	Books      []models.Book `json:"books"`
	Count      int           `json:"count"`
	TotalPages int           `json:"total_pages"`
}

// Service paces and instruments calls to a catalog provider.
// It issues exactly one upstream request per call and never retries.
type Service struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewService creates a catalog service. A non-positive requestsPerSecond
// disables pacing.
func NewService(provider Provider, requestsPerSecond float64) *Service {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &Service{
		provider: provider,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// ListBooks fetches a page of books and computes the total page count
func (s *Service) ListBooks(ctx context.Context, q Query) (*Page, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := s.provider.ListBooks(ctx, q)
	s.observe(ctx, "list", start, err)
	if err != nil {
		logger.For(ctx).WithError(err).WithFields(logrus.Fields{
			"page":   q.Page,
			"search": q.Search,
			"topic":  q.Topic,
		}).Error("Error fetching books")
		return nil, err
	}

	return &Page{
		Books:      data.Results,
		Count:      data.Count,
		TotalPages: pagination.TotalPages(data.Count),
	}, nil
}

// GetBook fetches a single book by id
func (s *Service) GetBook(ctx context.Context, id int) (*models.Book, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	book, err := s.provider.GetBook(ctx, id)
	s.observe(ctx, "get", start, err)
	if err != nil {
		logger.For(ctx).WithError(err).WithField("book_id", id).Error("Error fetching book")
		return nil, err
	}
	return book, nil
}

func (s *Service) observe(ctx context.Context, operation string, start time.Time, err error) {
	dur := time.Since(start)
	metrics.CatalogRequestDuration.WithLabelValues(operation).Observe(dur.Seconds())
	metrics.CatalogRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
	logger.For(ctx).WithFields(logrus.Fields{
		"provider":  s.provider.Name(),
		"operation": operation,
		"duration":  dur.String(),
	}).Debug("catalog request")
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
