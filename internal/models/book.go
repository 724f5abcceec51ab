package models

import (
	"sort"
	"strings"
)

// Format keys used by the catalog for covers
const (
	FormatCoverJPEG = "image/jpeg"

	// PlaceholderCover is shown when a book has no cover image
	PlaceholderCover = "https://via.placeholder.com/200x300?text=No+Cover"
)

// Author represents a book author as returned by the catalog
type Author struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty"`
}

// Book represents a catalog book. It is read-only third-party data.
type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Author          `json:"authors"`
	Bookshelves   []string          `json:"bookshelves"`
	Subjects      []string          `json:"subjects,omitempty"`
	Languages     []string          `json:"languages"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

// ListResponse is one page of catalog results
type ListResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Book  `json:"results"`
}

// Download is a single downloadable format of a book
type Download struct {
	Format string `json:"format"`
	URL    string `json:"url"`
}

// CoverURL returns the cover image URL or the placeholder
func (b *Book) CoverURL() string {
	if url := b.Formats[FormatCoverJPEG]; url != "" {
		return url
	}
	return PlaceholderCover
}

// AuthorNames returns author names joined by ", "
func (b *Book) AuthorNames() string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// GenresFallback is shown for a book without bookshelves
const GenresFallback = "N/A"

// Genres returns the bookshelves joined by ", ", or GenresFallback when
// there are none
func (b *Book) Genres() string {
	if len(b.Bookshelves) == 0 {
		return GenresFallback
	}
	return strings.Join(b.Bookshelves, ", ")
}

// LanguageList returns the language codes joined by ", "
func (b *Book) LanguageList() string {
	return strings.Join(b.Languages, ", ")
}

// Downloads returns all formats sorted by format key
func (b *Book) Downloads() []Download {
	downloads := make([]Download, 0, len(b.Formats))
	for format, url := range b.Formats {
		downloads = append(downloads, Download{Format: format, URL: url})
	}
	sort.Slice(downloads, func(i, j int) bool {
		return downloads[i].Format < downloads[j].Format
	})
	return downloads
}
