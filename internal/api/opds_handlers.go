package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/logger"
	"github.com/justyntemme/bookshelf/internal/opds"
)

// getBaseURL constructs the base URL from the request
func getBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// OPDSCatalog serves the root OPDS navigation catalog
func (h *Handler) OPDSCatalog(c *gin.Context) {
	baseURL := getBaseURL(c)
	selfURL := baseURL + "/opds/catalog.xml"

	feed := opds.NewNavigationFeed("Bookshelf", "urn:bookshelf:catalog:root", selfURL, selfURL, time.Now())

	feed.AddNavigationEntry(
		"All Books",
		"urn:bookshelf:catalog:books",
		baseURL+"/opds/books.xml",
		"Browse the Project Gutenberg catalog",
	)

	feed.AddNavigationEntry(
		"Wishlist",
		"urn:bookshelf:catalog:wishlist",
		baseURL+"/opds/wishlist.xml",
		"Books on your wishlist",
	)

	h.writeFeed(c, feed, opds.CatalogType)
}

// OPDSBooks serves one page of the catalog as an acquisition feed
func (h *Handler) OPDSBooks(c *gin.Context) {
	ctx := c.Request.Context()
	baseURL := getBaseURL(c)
	q := queryFromParams(c)

	page, err := h.books.ListBooks(ctx, q)
	if err != nil {
		c.String(upstreamStatus(err), "Error fetching books")
		return
	}

	feed := opds.NewAcquisitionFeed(
		"All Books",
		"urn:bookshelf:catalog:books",
		opdsPageURL(baseURL, q, q.Page),
		baseURL+"/opds/catalog.xml",
		time.Now(),
	)

	links := opds.PageLinks{}
	if page.TotalPages > 0 {
		links.First = opdsPageURL(baseURL, q, 1)
		links.Last = opdsPageURL(baseURL, q, page.TotalPages)
	}
	if q.Page > 1 {
		links.Previous = opdsPageURL(baseURL, q, q.Page-1)
	}
	if q.Page < page.TotalPages {
		links.Next = opdsPageURL(baseURL, q, q.Page+1)
	}
	feed.AddPageLinks(links)
	feed.AddBooks(page.Books, baseURL)

	h.writeFeed(c, feed, opds.FeedType)
}

// OPDSWishlist serves the caller's wishlist as an acquisition feed
func (h *Handler) OPDSWishlist(c *gin.Context) {
	baseURL := getBaseURL(c)
	state := h.profile(c).wishlist.Load(c.Request.Context(), "")
	if state.Err != nil {
		c.String(http.StatusInternalServerError, "Error loading wishlist")
		return
	}

	feed := opds.NewAcquisitionFeed(
		"Wishlist",
		"urn:bookshelf:catalog:wishlist",
		baseURL+"/opds/wishlist.xml",
		baseURL+"/opds/catalog.xml",
		time.Now(),
	)
	feed.AddBooks(state.Books, baseURL)

	h.writeFeed(c, feed, opds.FeedType)
}

func (h *Handler) writeFeed(c *gin.Context, feed *opds.Feed, contentType string) {
	data, err := feed.ToXML()
	if err != nil {
		logger.For(c.Request.Context()).WithError(err).Error("Failed to generate OPDS feed")
		c.String(http.StatusInternalServerError, "Failed to generate feed")
		return
	}
	c.Data(http.StatusOK, contentType+";charset=utf-8", data)
}

func opdsPageURL(baseURL string, q catalog.Query, page int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Topic != "" {
		params.Set("topic", q.Topic)
	}
	return baseURL + "/opds/books.xml?" + params.Encode()
}
