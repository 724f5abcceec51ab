package opds

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/bookshelf/internal/models"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestBookToEntry(t *testing.T) {
	book := &models.Book{
		ID:          84,
		Title:       "Frankenstein",
		Authors:     []models.Author{{Name: "Shelley, Mary Wollstonecraft"}},
		Bookshelves: []string{"Browsing: Fiction", "Gothic Fiction"},
		Languages:   []string{"en"},
		Formats: map[string]string{
			"image/jpeg":                "https://example.com/84.jpg",
			"application/epub+zip":      "https://example.com/84.epub",
			"text/plain; charset=utf-8": "https://example.com/84.txt",
		},
		DownloadCount: 120,
	}

	entry := BookToEntry(book, "http://localhost:8080", fixedTime)

	assert.Equal(t, "urn:gutenberg:84", entry.ID)
	assert.Equal(t, []Author{{Name: "Shelley, Mary Wollstonecraft"}}, entry.Authors)
	assert.Equal(t, []Category{
		{Term: "Browsing: Fiction", Label: "Fiction"},
		{Term: "Gothic Fiction", Label: "Gothic Fiction"},
	}, entry.Categories)

	var acquisitions []Link
	var images int
	for _, l := range entry.Links {
		switch l.Rel {
		case LinkRelAcquisition:
			acquisitions = append(acquisitions, l)
		case LinkRelImage, LinkRelThumbnail:
			images++
		}
	}
	require.Len(t, acquisitions, 2)
	assert.Equal(t, "application/epub+zip", acquisitions[0].Type)
	assert.Equal(t, "text/plain", acquisitions[1].Type)
	assert.Equal(t, 2, images)
	assert.Equal(t, "http://localhost:8080/book?id=84", entry.Links[0].Href)
}

func TestFeedToXML(t *testing.T) {
	feed := NewAcquisitionFeed("Catalog", "urn:bookshelf:catalog", "http://x/opds/books.xml", "http://x/opds/catalog.xml", fixedTime)
	feed.AddPageLinks(PageLinks{Next: "http://x/opds/books.xml?page=2"})
	feed.AddBooks([]models.Book{{ID: 1, Title: "The Declaration of Independence"}}, "http://x")

	data, err := feed.ToXML()
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `rel="next"`)
	assert.NotContains(t, out, `rel="previous"`)
	assert.Contains(t, out, "<title>The Declaration of Independence</title>")
	assert.Contains(t, out, "2026-01-02T03:04:05Z")
}

func TestNavigationFeed(t *testing.T) {
	feed := NewNavigationFeed("Bookshelf", "urn:bookshelf:root", "http://x/opds/catalog.xml", "http://x/opds/catalog.xml", fixedTime)
	feed.AddNavigationEntry("Wishlist", "urn:bookshelf:wishlist", "http://x/opds/wishlist.xml", "Your wishlisted books")

	require.Len(t, feed.Entries, 1)
	assert.Equal(t, LinkRelSubsection, feed.Entries[0].Links[0].Rel)
	assert.Equal(t, "Your wishlisted books", feed.Entries[0].Content.Value)
	assert.Equal(t, CatalogType, feed.Links[0].Type)
}

func TestMIMEType(t *testing.T) {
	assert.Equal(t, "text/html", MIMEType("text/html; charset=utf-8"))
	assert.Equal(t, "application/epub+zip", MIMEType("application/epub+zip"))
}
