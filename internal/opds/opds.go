// Package opds builds OPDS 1.2 Atom feeds over catalog books so e-reader
// apps can browse the catalog and a profile's wishlist.
package opds

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/justyntemme/bookshelf/internal/models"
)

const (
	// OPDS Link Relations
	LinkRelAcquisition = "http://opds-spec.org/acquisition/open-access"
	LinkRelImage       = "http://opds-spec.org/image"
	LinkRelThumbnail   = "http://opds-spec.org/image/thumbnail"
	LinkRelSubsection  = "subsection"

	// OPDS Content Types
	CatalogType = "application/atom+xml;profile=opds-catalog;kind=navigation"
	FeedType    = "application/atom+xml;profile=opds-catalog;kind=acquisition"

	atomNS = "http://www.w3.org/2005/Atom"
	dcNS   = "http://purl.org/dc/terms/"
	opdsNS = "http://opds-spec.org/2010/catalog"

	feedAuthor = "Bookshelf"
)

// Feed represents an OPDS Atom feed
type Feed struct {
	XMLName   xml.Name  `xml:"feed"`
	Xmlns     string    `xml:"xmlns,attr"`
	XmlnsDC   string    `xml:"xmlns:dc,attr,omitempty"`
	XmlnsOpds string    `xml:"xmlns:opds,attr,omitempty"`
	ID        string    `xml:"id"`
	Title     string    `xml:"title"`
	Updated   time.Time `xml:"updated"`
	Author    *Author   `xml:"author,omitempty"`
	Links     []Link    `xml:"link"`
	Entries   []Entry   `xml:"entry"`
}

// Entry represents an OPDS feed entry
type Entry struct {
	ID         string     `xml:"id"`
	Title      string     `xml:"title"`
	Updated    time.Time  `xml:"updated"`
	Authors    []Author   `xml:"author,omitempty"`
	Content    *Content   `xml:"content,omitempty"`
	Categories []Category `xml:"category,omitempty"`
	Links      []Link     `xml:"link"`
	Languages  []string   `xml:"dc:language,omitempty"`
}

// Author represents an Atom author element
type Author struct {
	Name string `xml:"name"`
}

// Link represents an Atom link element
type Link struct {
	Rel   string `xml:"rel,attr,omitempty"`
	Href  string `xml:"href,attr"`
	Type  string `xml:"type,attr,omitempty"`
	Title string `xml:"title,attr,omitempty"`
}

// Content represents content with type attribute
type Content struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Category carries a bookshelf label
type Category struct {
	Term  string `xml:"term,attr"`
	Label string `xml:"label,attr,omitempty"`
}

// PageLinks are the absolute URLs of neighbouring pages; empty values are
// omitted from the feed
type PageLinks struct {
	First    string
	Previous string
	Next     string
	Last     string
}

func newFeed(title, id, selfURL, startURL, selfType string, updated time.Time) *Feed {
	return &Feed{
		Xmlns:     atomNS,
		XmlnsDC:   dcNS,
		XmlnsOpds: opdsNS,
		ID:        id,
		Title:     title,
		Updated:   updated.UTC(),
		Author:    &Author{Name: feedAuthor},
		Links: []Link{
			{Rel: "self", Href: selfURL, Type: selfType},
			{Rel: "start", Href: startURL, Type: CatalogType},
		},
		Entries: []Entry{},
	}
}

// NewNavigationFeed creates a new OPDS navigation feed
func NewNavigationFeed(title, id, selfURL, startURL string, updated time.Time) *Feed {
	return newFeed(title, id, selfURL, startURL, CatalogType, updated)
}

// NewAcquisitionFeed creates a new OPDS acquisition feed
func NewAcquisitionFeed(title, id, selfURL, startURL string, updated time.Time) *Feed {
	return newFeed(title, id, selfURL, startURL, FeedType, updated)
}

// AddNavigationEntry adds a navigation entry to the feed
func (f *Feed) AddNavigationEntry(title, id, href, summary string) {
	entry := Entry{
		ID:      id,
		Title:   title,
		Updated: f.Updated,
		Links: []Link{
			{Rel: LinkRelSubsection, Href: href, Type: FeedType},
		},
	}
	if summary != "" {
		entry.Content = &Content{Type: "text", Value: summary}
	}
	f.Entries = append(f.Entries, entry)
}

// AddPageLinks adds first/previous/next/last links
func (f *Feed) AddPageLinks(p PageLinks) {
	for _, l := range []Link{
		{Rel: "first", Href: p.First},
		{Rel: "previous", Href: p.Previous},
		{Rel: "next", Href: p.Next},
		{Rel: "last", Href: p.Last},
	} {
		if l.Href != "" {
			l.Type = FeedType
			f.Links = append(f.Links, l)
		}
	}
}

// AddBooks appends one acquisition entry per book
func (f *Feed) AddBooks(books []models.Book, baseURL string) {
	for i := range books {
		f.Entries = append(f.Entries, BookToEntry(&books[i], baseURL, f.Updated))
	}
}

// BookToEntry converts a catalog book to an OPDS entry. Every format other
// than the cover becomes an open-access acquisition link.
func BookToEntry(book *models.Book, baseURL string, updated time.Time) Entry {
	entry := Entry{
		ID:        fmt.Sprintf("urn:gutenberg:%d", book.ID),
		Title:     book.Title,
		Updated:   updated.UTC(),
		Languages: book.Languages,
		Links: []Link{
			{Rel: "alternate", Href: fmt.Sprintf("%s/book?id=%d", baseURL, book.ID), Type: "text/html", Title: "Details"},
		},
	}

	for _, a := range book.Authors {
		entry.Authors = append(entry.Authors, Author{Name: a.Name})
	}

	for _, shelf := range book.Bookshelves {
		label := strings.TrimSpace(strings.TrimPrefix(shelf, "Browsing:"))
		entry.Categories = append(entry.Categories, Category{Term: shelf, Label: label})
	}

	if cover := book.Formats[models.FormatCoverJPEG]; cover != "" {
		entry.Links = append(entry.Links,
			Link{Rel: LinkRelImage, Href: cover, Type: models.FormatCoverJPEG},
			Link{Rel: LinkRelThumbnail, Href: cover, Type: models.FormatCoverJPEG},
		)
	}

	for _, d := range book.Downloads() {
		if d.Format == models.FormatCoverJPEG {
			continue
		}
		entry.Links = append(entry.Links, Link{
			Rel:  LinkRelAcquisition,
			Href: d.URL,
			Type: MIMEType(d.Format),
		})
	}

	if book.DownloadCount > 0 {
		entry.Content = &Content{Type: "text", Value: fmt.Sprintf("Downloads: %d", book.DownloadCount)}
	}

	return entry
}

// MIMEType strips parameters like "; charset=us-ascii" from a format key
func MIMEType(format string) string {
	if i := strings.Index(format, ";"); i >= 0 {
		return strings.TrimSpace(format[:i])
	}
	return format
}

// ToXML converts the feed to XML bytes
func (f *Feed) ToXML() ([]byte, error) {
	output, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}
