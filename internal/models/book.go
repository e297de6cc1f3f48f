// This file defines the core data structure (model) for our application.
// A Book is the resolved title/author/path record produced by the scan pipeline.

package models

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// UnknownAuthor is used whenever an author cannot be resolved.
const UnknownAuthor = "Unknown"

// ErrEmptyTitle is returned when a book would be constructed without a title.
var ErrEmptyTitle = errors.New("book title cannot be empty")

// Book represents a single ebook in the library.
// Path is the identity key; it is empty only for entries without a backing file.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Path   string `json:"path,omitempty"`
}

// NewBook builds a Book, trimming title and author and substituting
// UnknownAuthor for an empty author.
func NewBook(title, author, path string) (Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Book{}, ErrEmptyTitle
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = UnknownAuthor
	}
	return Book{Title: title, Author: author, Path: path}, nil
}

// HasFile reports whether the book is backed by a file on disk.
func (b Book) HasFile() bool {
	return b.Path != ""
}

// SortBooks orders books case-insensitively by title. The sort is stable,
// so books with equal titles keep their discovery order.
func SortBooks(books []Book) {
	type keyed struct {
		key  string
		book Book
	}
	fold := cases.Fold()
	ks := make([]keyed, len(books))
	for i, b := range books {
		ks[i] = keyed{key: fold.String(b.Title), book: b}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	for i := range ks {
		books[i] = ks[i].book
	}
}

// SampleBooks returns the entries seeded into an empty library when
// library.seed_samples is enabled. They have no backing file.
func SampleBooks() []Book {
	return []Book{
		{Title: "Amber and Iron", Author: "Margaret Weis"},
		{Title: "AI Engineering: Building Applications with Foundation Models", Author: "Chip Huyen"},
		{Title: "The Absolute Guide to Dashboarding and Reporting with Power BI", Author: "Kasper de Jonge"},
	}
}
