package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/bookshelf/internal/catalog"
	"github.com/justyntemme/bookshelf/internal/controller"
	"github.com/justyntemme/bookshelf/internal/models"
	"github.com/justyntemme/bookshelf/internal/view"
)

func render(t *testing.T, name string, v any) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, map[string]any{
		"Title":    "Test",
		"Nav":      "catalog",
		"ReturnTo": "/?page=1",
		"View":     v,
	}))
	return buf.String()
}

func TestTemplatesRegistered(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"catalog.html", "detail.html", "wishlist.html", "header", "footer", "pagination"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestCatalogTemplate(t *testing.T) {
	state := controller.CatalogState{
		Query:      catalog.Query{Page: 1},
		Books:      []models.Book{{ID: 84, Title: "Frankenstein", Authors: []models.Author{{Name: "Shelley, Mary"}}}},
		Count:      1,
		TotalPages: 1,
	}
	out := render(t, "catalog.html", view.Catalog(state, []string{"Gothic Fiction"}, map[int]bool{84: true}))

	assert.Contains(t, out, "Frankenstein")
	assert.Contains(t, out, "ID: 84")
	assert.Contains(t, out, `action="/wishlist/84/toggle"`)
	assert.Contains(t, out, view.HeartOn)
	assert.Contains(t, out, `<span class="active">1</span>`)
	assert.Contains(t, out, "Gothic Fiction")
}

func TestCatalogTemplateFailure(t *testing.T) {
	state := controller.CatalogState{Query: catalog.Query{Page: 1}, Err: assert.AnError}
	out := render(t, "catalog.html", view.Catalog(state, nil, nil))

	assert.Contains(t, out, view.MsgFetchError)
	assert.Contains(t, out, view.MsgNoBooks)
	assert.Contains(t, out, `<span class="disabled">Previous</span>`)
	assert.Contains(t, out, `<span class="disabled">Next</span>`)
}

func TestDetailTemplate(t *testing.T) {
	out := render(t, "detail.html", view.Detail(controller.DetailState{Status: controller.DetailMissing}, false))
	assert.Contains(t, out, view.MsgNoID)

	book := &models.Book{ID: 11, Title: "Alice in Wonderland", Languages: []string{"en"},
		Formats: map[string]string{"text/html": "https://example.com/11.html"}}
	out = render(t, "detail.html", view.Detail(controller.DetailState{ID: 11, Book: book, Status: controller.DetailOK}, true))
	assert.Contains(t, out, "Alice in Wonderland")
	assert.Contains(t, out, `href="https://example.com/11.html"`)
	assert.Contains(t, out, "Remove from Wishlist")
}

func TestWishlistTemplate(t *testing.T) {
	out := render(t, "wishlist.html", view.Wishlist(controller.WishlistState{IDs: []int{}}))
	assert.Contains(t, out, view.MsgWishlistEmpty)

	state := controller.WishlistState{IDs: []int{11}, Books: []models.Book{{ID: 11, Title: "Alice in Wonderland"}}}
	out = render(t, "wishlist.html", view.Wishlist(state))
	assert.Contains(t, out, `action="/wishlist/11/remove"`)
	assert.Contains(t, out, "ID: 11")
}
