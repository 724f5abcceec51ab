package controller

import (
	"context"
	"strconv"
	"strings"

	"github.com/justyntemme/bookshelf/internal/models"
)

// DetailStatus is the outcome of a detail load
type DetailStatus string

const (
	DetailOK      DetailStatus = "ok"
	DetailMissing DetailStatus = "missing"
	DetailFailed  DetailStatus = "failed"
)

// DetailState is the result of one detail load
type DetailState struct {
	ID     int
	Book   *models.Book
	Status DetailStatus
	Err    error
}

// Detail drives the single-book page
type Detail struct {
	books Books
}

func NewDetail(books Books) *Detail {
	return &Detail{books: books}
}

// Load fetches the book named by rawID, the value of the page's id
// parameter. An empty id is reported as missing; an unparsable id or a
// failed fetch as failed.
func (d *Detail) Load(ctx context.Context, rawID string) DetailState {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return DetailState{Status: DetailMissing}
	}

	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return DetailState{Status: DetailFailed, Err: err}
	}

	book, err := d.books.GetBook(ctx, id)
	if err != nil {
		return DetailState{ID: id, Status: DetailFailed, Err: err}
	}
	return DetailState{ID: id, Book: book, Status: DetailOK}
}
