// Package view turns controller state into render-ready view models. Every
// function here is pure: the same state always yields the same view.
package view

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/controller"
	"github.com/justyntemme/bookshelf/internal/models"
	"github.com/justyntemme/bookshelf/internal/pagination"
)

// User-facing messages
const (
	MsgFetchError     = "Error fetching books"
	MsgNoBooks        = "No books found"
	MsgNoID           = "No book ID provided"
	MsgDetailFailed   = "Error loading book details"
	MsgWishlistEmpty  = "Your wishlist is empty"
	MsgWishlistFailed = "Error loading wishlist"
	MsgNoMatches      = "No wishlisted books match the filter"

	HeartOn  = "❤️"
	HeartOff = "🤍"

	RemoveLabel = "Remove from Wishlist"
)

// Card is one book tile in a grid
type Card struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Genres        string `json:"genres"`
	CoverURL      string `json:"cover_url"`
	DetailURL     string `json:"detail_url"`
	Wishlisted    bool   `json:"wishlisted"`
	WishlistLabel string `json:"wishlist_label,omitempty"`
	ToggleURL     string `json:"toggle_url,omitempty"`
	RemoveURL     string `json:"remove_url,omitempty"`
}

// NavButton is a previous/next control
type NavButton struct {
	Page     int    `json:"page"`
	Disabled bool   `json:"disabled"`
	URL      string `json:"url,omitempty"`
}

// PageLink is one entry of the pagination window
type PageLink struct {
	Page     int    `json:"page,omitempty"`
	Active   bool   `json:"active,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
	URL      string `json:"url,omitempty"`
}

// PaginationView is the full pagination bar
type PaginationView struct {
	Empty     bool       `json:"empty"`
	EmptyText string     `json:"empty_text,omitempty"`
	Items     []PageLink `json:"items"`
	Prev      NavButton  `json:"prev"`
	Next      NavButton  `json:"next"`
}

// Option is a genre select option
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// CatalogView is the listing page
type CatalogView struct {
	Search     string         `json:"search"`
	Genre      string         `json:"genre"`
	Genres     []Option       `json:"genres"`
	Cards      []Card         `json:"cards"`
	Message    string         `json:"message,omitempty"`
	Count      int            `json:"count"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Pagination PaginationView `json:"pagination"`
}

// DetailView is the single-book page
type DetailView struct {
	Found         bool              `json:"found"`
	Message       string            `json:"message,omitempty"`
	ID            int               `json:"id,omitempty"`
	Title         string            `json:"title,omitempty"`
	CoverURL      string            `json:"cover_url,omitempty"`
	Authors       string            `json:"authors,omitempty"`
	Genres        string            `json:"genres,omitempty"`
	DownloadCount int               `json:"download_count,omitempty"`
	Languages     string            `json:"languages,omitempty"`
	Downloads     []models.Download `json:"downloads,omitempty"`
	Wishlisted    bool              `json:"wishlisted"`
	ToggleURL     string            `json:"toggle_url,omitempty"`
}

// WishlistView is the wishlist page
type WishlistView struct {
	Filter  string `json:"filter"`
	Cards   []Card `json:"cards"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total"`
}

// PageURL returns the catalog URL for page under q's filters
func PageURL(q catalog.Query, page int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("search", q.Search)
	params.Set("genre", q.Topic)
	return "/?" + params.Encode()
}

// DetailURL returns the detail page URL of a book
func DetailURL(id int) string {
	return "/book?id=" + strconv.Itoa(id)
}

// ToggleURL returns the wishlist toggle endpoint of a book
func ToggleURL(id int) string {
	return "/wishlist/" + strconv.Itoa(id) + "/toggle"
}

// RemoveURL returns the wishlist remove endpoint of a book
func RemoveURL(id int) string {
	return "/wishlist/" + strconv.Itoa(id) + "/remove"
}

// Catalog renders the listing page from a load result, its genre options
// and the current wishlist membership
func Catalog(state controller.CatalogState, genres []string, wishlisted map[int]bool) CatalogView {
	v := CatalogView{
		Search:     state.Query.Search,
		Genre:      state.Query.Topic,
		Genres:     genreOptions(genres, state.Query.Topic),
		Cards:      make([]Card, 0, len(state.Books)),
		Count:      state.Count,
		Page:       state.Query.Page,
		TotalPages: state.TotalPages,
		Pagination: Pagination(state.Query, state.TotalPages),
	}

	if state.Failed() {
		v.Message = MsgFetchError
		return v
	}

	for i := range state.Books {
		book := &state.Books[i]
		card := bookCard(book)
		card.Genres = strings.ReplaceAll(card.Genres, "Browsing:", "")
		if card.Genres == "" {
			card.Genres = models.GenresFallback
		}
		card.Wishlisted = wishlisted[book.ID]
		card.WishlistLabel = HeartOff
		if card.Wishlisted {
			card.WishlistLabel = HeartOn
		}
		card.ToggleURL = ToggleURL(book.ID)
		v.Cards = append(v.Cards, card)
	}
	return v
}

// Pagination renders the pagination bar for q.Page out of totalPages
func Pagination(q catalog.Query, totalPages int) PaginationView {
	current := q.Page
	p := PaginationView{
		Prev: NavButton{Page: current - 1, Disabled: pagination.PrevDisabled(current)},
		Next: NavButton{Page: current + 1, Disabled: pagination.NextDisabled(current, totalPages)},
	}
	if !p.Prev.Disabled {
		p.Prev.URL = PageURL(q, p.Prev.Page)
	}
	if !p.Next.Disabled {
		p.Next.URL = PageURL(q, p.Next.Page)
	}

	items := pagination.Window(current, totalPages)
	if len(items) == 0 {
		p.Empty = true
		p.EmptyText = MsgNoBooks
		p.Items = []PageLink{}
		return p
	}

	p.Items = make([]PageLink, 0, len(items))
	for _, item := range items {
		link := PageLink{Page: item.Page, Active: item.Active, Ellipsis: item.Ellipsis}
		if !item.Ellipsis {
			link.URL = PageURL(q, item.Page)
		}
		p.Items = append(p.Items, link)
	}
	return p
}

// Detail renders the single-book page
func Detail(state controller.DetailState, wishlisted bool) DetailView {
	switch state.Status {
	case controller.DetailMissing:
		return DetailView{Message: MsgNoID}
	case controller.DetailFailed:
		return DetailView{Message: MsgDetailFailed}
	}

	book := state.Book
	return DetailView{
		Found:         true,
		ID:            book.ID,
		Title:         book.Title,
		CoverURL:      book.CoverURL(),
		Authors:       book.AuthorNames(),
		Genres:        book.Genres(),
		DownloadCount: book.DownloadCount,
		Languages:     book.LanguageList(),
		Downloads:     book.Downloads(),
		Wishlisted:    wishlisted,
		ToggleURL:     ToggleURL(book.ID),
	}
}

// Wishlist renders the wishlist page
func Wishlist(state controller.WishlistState) WishlistView {
	v := WishlistView{
		Filter: state.Filter,
		Cards:  make([]Card, 0, len(state.Books)),
		Total:  len(state.IDs),
	}

	switch {
	case state.Err != nil:
		v.Message = MsgWishlistFailed
		return v
	case state.Empty():
		v.Message = MsgWishlistEmpty
		return v
	}

	for i := range state.Books {
		card := bookCard(&state.Books[i])
		card.Wishlisted = true
		card.WishlistLabel = RemoveLabel
		card.RemoveURL = RemoveURL(card.ID)
		v.Cards = append(v.Cards, card)
	}
	if len(v.Cards) == 0 && state.Filter != "" {
		v.Message = MsgNoMatches
	}
	return v
}

func bookCard(book *models.Book) Card {
	return Card{
		ID:        book.ID,
		Title:     book.Title,
		Authors:   book.AuthorNames(),
		Genres:    book.Genres(),
		CoverURL:  book.CoverURL(),
		DetailURL: DetailURL(book.ID),
	}
}

// genreOptions lists an "all genres" option, then genres, keeping the
// selected genre available even when the current page does not carry it
func genreOptions(genres []string, selected string) []Option {
	options := make([]Option, 0, len(genres)+2)
	options = append(options, Option{Value: "", Label: "All genres", Selected: selected == ""})

	found := false
	for _, g := range genres {
		if g == selected {
			found = true
		}
		options = append(options, Option{Value: g, Label: g, Selected: g == selected})
	}
	if selected != "" && !found {
		options = append(options, Option{Value: selected, Label: selected, Selected: true})
	}
	return options
}
