package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverURL(t *testing.T) {
	withCover := &Book{Formats: map[string]string{FormatCoverJPEG: "https://example.com/cover.jpg"}}
	assert.Equal(t, "https://example.com/cover.jpg", withCover.CoverURL())

	withoutCover := &Book{Formats: map[string]string{"text/plain": "https://example.com/book.txt"}}
	assert.Equal(t, PlaceholderCover, withoutCover.CoverURL())

	assert.Equal(t, PlaceholderCover, (&Book{}).CoverURL())
}

func TestAuthorNames(t *testing.T) {
	book := &Book{Authors: []Author{{Name: "Austen, Jane"}, {Name: "Brontë, Charlotte"}}}
	assert.Equal(t, "Austen, Jane, Brontë, Charlotte", book.AuthorNames())
	assert.Equal(t, "", (&Book{}).AuthorNames())
}

func TestGenres(t *testing.T) {
	tests := []struct {
		name     string
		shelves  []string
		expected string
	}{
		{"none", nil, "N/A"},
		{"single", []string{"Gothic Fiction"}, "Gothic Fiction"},
		{"multiple", []string{"Best Books Ever Listings", "Harvard Classics"}, "Best Books Ever Listings, Harvard Classics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := &Book{Bookshelves: tt.shelves}
			assert.Equal(t, tt.expected, book.Genres())
		})
	}
}

func TestDownloadsSorted(t *testing.T) {
	book := &Book{Formats: map[string]string{
		"text/plain":           "https://example.com/t",
		"application/epub+zip": "https://example.com/e",
		"image/jpeg":           "https://example.com/c",
	}}

	downloads := book.Downloads()

	assert.Equal(t, []Download{
		{Format: "application/epub+zip", URL: "https://example.com/e"},
		{Format: "image/jpeg", URL: "https://example.com/c"},
		{Format: "text/plain", URL: "https://example.com/t"},
	}, downloads)
}

func TestLanguageList(t *testing.T) {
	book := &Book{Languages: []string{"en", "fr"}}
	assert.Equal(t, "en, fr", book.LanguageList())
}
