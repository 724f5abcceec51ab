package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/bookshelf/internal/auth"
	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/controller"
	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/querystate"
	"github.com/justyntemme/bookshelf/internal/storage"
	"github.com/justyntemme/bookshelf/internal/view"
	"github.com/justyntemme/bookshelf/internal/wishlist"
)

// Handler contains all HTTP handlers
type Handler struct {
	books controller.Books
	store storage.Store
}

// NewHandler creates a new handler instance
func NewHandler(books controller.Books, store storage.Store) *Handler {
	return &Handler{books: books, store: store}
}

// profile bundles the controllers bound to the caller's profile
type profile struct {
	catalog  *controller.Catalog
	detail   *controller.Detail
	wishlist *controller.Wishlist
	list     *wishlist.Manager
}

func (h *Handler) profile(c *gin.Context) profile {
	kv := storage.Scoped(h.store, auth.GetProfileID(c))
	wl := wishlist.New(kv)
	return profile{
		catalog:  controller.NewCatalog(h.books, querystate.New(kv), wl),
		detail:   controller.NewDetail(h.books),
		wishlist: controller.NewWishlist(h.books, wl),
		list:     wl,
	}
}

// CatalogPage renders the listing page. Submitted search and genre values
// are persisted for the profile.
func (h *Handler) CatalogPage(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.profile(c)

	q, err := p.catalog.Apply(formFromQuery(c))
	if err != nil {
		logger.For(ctx).WithError(err).Error("Failed to read saved filters")
		q = catalog.Query{Page: 1}
	}

	state := p.catalog.Load(ctx, q)
	genres := p.catalog.Genres(ctx, state)
	wishlisted := h.wishlisted(ctx, p)

	c.HTML(http.StatusOK, "catalog.html", gin.H{
		"Title":    "Catalog",
		"Nav":      "catalog",
		"ReturnTo": c.Request.URL.RequestURI(),
		"View":     view.Catalog(state, genres, wishlisted),
	})
}

// DetailPage renders a single book
func (h *Handler) DetailPage(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.profile(c)

	state := p.detail.Load(ctx, c.Query("id"))
	if state.Status == controller.DetailFailed && state.Err != nil {
		logger.For(ctx).WithError(state.Err).WithField("id", c.Query("id")).Warn("Error loading book details")
	}

	on := false
	if state.Status == controller.DetailOK {
		var err error
		if on, err = p.list.IsWishlisted(state.ID); err != nil {
			logger.For(ctx).WithError(err).Warn("Failed to read wishlist")
		}
	}

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"Title":    "Book",
		"Nav":      "detail",
		"ReturnTo": c.Request.URL.RequestURI(),
		"View":     view.Detail(state, on),
	})
}

// WishlistPage renders the profile's wishlist
func (h *Handler) WishlistPage(c *gin.Context) {
	p := h.profile(c)
	state := p.wishlist.Load(c.Request.Context(), c.Query("filter"))

	c.HTML(http.StatusOK, "wishlist.html", gin.H{
		"Title":    "Wishlist",
		"Nav":      "wishlist",
		"ReturnTo": c.Request.URL.RequestURI(),
		"View":     view.Wishlist(state),
	})
}

// ToggleWishlist flips a book's membership and redirects back
func (h *Handler) ToggleWishlist(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return
	}

	if _, err := h.profile(c).catalog.ToggleWishlist(id); err != nil {
		logger.For(c.Request.Context()).WithError(err).WithField("book_id", id).Error("Failed to toggle wishlist")
		c.String(http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	c.Redirect(http.StatusSeeOther, returnTo(c, "/"))
}

// RemoveFromWishlist drops a book from the wishlist and redirects back
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return
	}

	if _, err := h.profile(c).wishlist.Remove(id); err != nil {
		logger.For(c.Request.Context()).WithError(err).WithField("book_id", id).Error("Failed to remove from wishlist")
		c.String(http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	c.Redirect(http.StatusSeeOther, returnTo(c, "/wishlist"))
}

// ListBooks returns one catalog page as JSON. Unlike the HTML page the
// filters come only from the query string and are not persisted.
func (h *Handler) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.profile(c)

	state := p.catalog.Load(ctx, queryFromParams(c))
	if state.Failed() {
		c.JSON(upstreamStatus(state.Err), gin.H{"error": view.MsgFetchError})
		return
	}

	c.JSON(http.StatusOK, view.Catalog(state, p.catalog.Genres(ctx, state), h.wishlisted(ctx, p)))
}

// GetBook returns a single book by ID
func (h *Handler) GetBook(c *gin.Context) {
	ctx := c.Request.Context()
	p := h.profile(c)

	state := p.detail.Load(ctx, c.Param("id"))
	switch {
	case state.Status == controller.DetailOK:
	case state.ID == 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	case errors.Is(state.Err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	default:
		c.JSON(upstreamStatus(state.Err), gin.H{"error": view.MsgDetailFailed})
		return
	}

	on, err := p.list.IsWishlisted(state.ID)
	if err != nil {
		logger.For(ctx).WithError(err).Warn("Failed to read wishlist")
	}
	c.JSON(http.StatusOK, view.Detail(state, on))
}

// ListGenres returns the genre options for a search and topic
func (h *Handler) ListGenres(c *gin.Context) {
	q := queryFromParams(c)
	q.Page = 1

	page, err := h.books.ListBooks(c.Request.Context(), q)
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"error": view.MsgFetchError})
		return
	}

	genres := controller.GenresFrom(page.Books)
	if genres == nil {
		genres = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// GetWishlist returns the wishlisted books
func (h *Handler) GetWishlist(c *gin.Context) {
	state := h.profile(c).wishlist.Load(c.Request.Context(), c.Query("filter"))
	if state.Err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": view.MsgWishlistFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ids":    state.IDs,
		"missed": state.Missed,
		"view":   view.Wishlist(state),
	})
}

// ToggleWishlistJSON flips a book's membership
func (h *Handler) ToggleWishlistJSON(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	on, err := h.profile(c).catalog.ToggleWishlist(id)
	if err != nil {
		c.JSON(wishlistStatus(err), gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "wishlisted": on})
}

// RemoveFromWishlistJSON removes a book from the wishlist
func (h *Handler) RemoveFromWishlistJSON(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
		return
	}

	removed, err := h.profile(c).wishlist.Remove(id)
	if err != nil {
		c.JSON(wishlistStatus(err), gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "removed": removed, "wishlisted": false})
}

// HealthCheck returns server health status
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
}

// APIInfo returns API documentation for clients
func (h *Handler) APIInfo(c *gin.Context) {
	endpoints := []gin.H{
		{"method": "GET", "path": "/health", "description": "Health check"},
		{"method": "GET", "path": "/metrics", "description": "Prometheus metrics"},
		{"method": "GET", "path": "/api", "description": "API documentation"},

		// Catalog
		{"method": "GET", "path": "/api/books", "description": "List one catalog page", "query": "search, topic, page"},
		{"method": "GET", "path": "/api/books/:id", "description": "Get book by ID"},
		{"method": "GET", "path": "/api/genres", "description": "Genres of the first page", "query": "search, topic"},

		// Wishlist
		{"method": "GET", "path": "/api/wishlist", "description": "Get wishlisted books", "query": "filter"},
		{"method": "POST", "path": "/api/wishlist/:id", "description": "Toggle a book on the wishlist"},
		{"method": "DELETE", "path": "/api/wishlist/:id", "description": "Remove a book from the wishlist"},

		// OPDS
		{"method": "GET", "path": "/opds/catalog.xml", "description": "OPDS root catalog"},
		{"method": "GET", "path": "/opds/books.xml", "description": "OPDS catalog page", "query": "search, topic, page"},
		{"method": "GET", "path": "/opds/wishlist.xml", "description": "OPDS wishlist feed"},
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        "Bookshelf API",
		"version":     "1.0.0",
		"description": "Project Gutenberg catalog browser with per-profile wishlists",
		"endpoints":   endpoints,
	})
}

func (h *Handler) wishlisted(ctx context.Context, p profile) map[int]bool {
	set, err := p.catalog.Wishlisted()
	if err != nil {
		logger.For(ctx).WithError(err).Warn("Failed to read wishlist")
		return map[int]bool{}
	}
	return set
}

// formFromQuery reads the submitted catalog form. Absent fields stay nil so
// saved values are kept.
func formFromQuery(c *gin.Context) controller.Form {
	var form controller.Form
	if v, ok := c.GetQuery("search"); ok {
		v = strings.TrimSpace(v)
		form.Search = &v
	}
	if v, ok := c.GetQuery("genre"); ok {
		form.Genre = &v
	}
	form.Page, _ = strconv.Atoi(c.Query("page"))
	return form
}

func queryFromParams(c *gin.Context) catalog.Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return catalog.Query{
		Search: strings.TrimSpace(c.Query("search")),
		Topic:  c.Query("topic"),
		Page:   page,
	}
}

func bookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// returnTo picks the redirect target from the return_to form field. Only
// local paths are accepted.
func returnTo(c *gin.Context, fallback string) string {
	target := c.PostForm("return_to")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}

func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func wishlistStatus(err error) int {
	if errors.Is(err, wishlist.ErrCorrupt) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
