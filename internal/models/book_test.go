package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("Trims and keeps values", func(t *testing.T) {
		b, err := NewBook("  Dune ", " Frank Herbert ", "/books/dune.epub")
		require.NoError(t, err)
		assert.Equal(t, Book{Title: "Dune", Author: "Frank Herbert", Path: "/books/dune.epub"}, b)
		assert.True(t, b.HasFile())
	})

	t.Run("Empty author becomes Unknown", func(t *testing.T) {
		b, err := NewBook("Dune", "   ", "")
		require.NoError(t, err)
		assert.Equal(t, UnknownAuthor, b.Author)
		assert.False(t, b.HasFile())
	})

	t.Run("Empty title is rejected", func(t *testing.T) {
		_, err := NewBook(" \t", "Someone", "/x.epub")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})
}

func TestSortBooks(t *testing.T) {
	books := []Book{
		{Title: "Dune", Path: "d"},
		{Title: "amber", Path: "a1"},
		{Title: "Bell", Path: "b"},
		{Title: "Amber", Path: "a2"},
	}
	SortBooks(books)

	var paths []string
	for _, b := range books {
		paths = append(paths, b.Path)
	}
	// "amber" and "Amber" compare equal, so discovery order is kept.
	assert.Equal(t, []string{"a1", "a2", "b", "d"}, paths)
}

func TestSortBooks_FoldsCase(t *testing.T) {
	books := []Book{
		{Title: "STRASSE", Path: "upper"},
		{Title: "straße", Path: "sharp-s"},
		{Title: "Strand", Path: "strand"},
	}
	SortBooks(books)
	assert.Equal(t, "strand", books[0].Path)
	// Full case folding maps ß to ss, so these two tie.
	assert.Equal(t, "upper", books[1].Path)
	assert.Equal(t, "sharp-s", books[2].Path)
}

func TestSampleBooks(t *testing.T) {
	samples := SampleBooks()
	assert.Len(t, samples, 3)
	for _, b := range samples {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
		assert.False(t, b.HasFile())
	}
}

func TestExtractErrorString(t *testing.T) {
	assert.Equal(t, "Corrupted Archive", ErrorCorruptedArchive.String())
	assert.Equal(t, "Symlink Cycle", ErrorSymlinkCycle.String())
	assert.Equal(t, "Unknown Error", ExtractError("nope").String())
}
