package library_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/storysphere/internal/library"
	"github.com/vrsandeep/storysphere/internal/models"
	"github.com/vrsandeep/storysphere/internal/testutil"
)

func TestFormatOf(t *testing.T) {
	testCases := []struct {
		path     string
		expected library.Format
	}{
		{"a.epub", library.FormatStructuredEPUB},
		{"a.EPUB", library.FormatStructuredEPUB},
		{"a.mobi", library.FormatGenericFallback},
		{"a.Azw3", library.FormatGenericFallback},
		{"a.pdf", library.FormatGenericFallback},
		{"a.txt", library.FormatUnsupported},
		{"epub", library.FormatUnsupported},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, library.FormatOf(tc.path), tc.path)
	}
	assert.True(t, library.IsSupportedBook("x.PDF"))
	assert.False(t, library.IsSupportedBook("x.cbz"))
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()

	t.Run("Container metadata wins", func(t *testing.T) {
		p := testutil.CreateTestEPUB(t, dir, "whatever - nobody.epub", testutil.EPUBMetadata{
			Title:   "Red Seas Under Red Skies",
			Creator: "Scott Lynch",
		})
		book, err := library.Extract(p)
		require.NoError(t, err)
		assert.Equal(t, models.Book{Title: "Red Seas Under Red Skies", Author: "Scott Lynch", Path: p}, book)
	})

	t.Run("Missing title falls back to filename title", func(t *testing.T) {
		p := testutil.CreateTestEPUB(t, dir, "Fallback_Title - Filename Author.epub", testutil.EPUBMetadata{
			Creator: "Container Author",
		})
		book, err := library.Extract(p)
		require.NoError(t, err)
		assert.Equal(t, "Fallback Title", book.Title)
		assert.Equal(t, "Container Author", book.Author)
	})

	t.Run("Missing creator is Unknown", func(t *testing.T) {
		p := testutil.CreateTestEPUB(t, dir, "x - Filename Author.epub", testutil.EPUBMetadata{
			Title: "Container Title",
		})
		book, err := library.Extract(p)
		require.NoError(t, err)
		assert.Equal(t, "Container Title", book.Title)
		assert.Equal(t, models.UnknownAuthor, book.Author)
	})

	t.Run("Corrupt container degrades to filename", func(t *testing.T) {
		p := testutil.CreateTestFile(t, dir, "The_Lies_of_Locke_Lamora - Scott_Lynch.epub", "garbage")
		book, err := library.Extract(p)
		require.NoError(t, err)
		assert.Equal(t, models.Book{Title: "The Lies of Locke Lamora", Author: "Scott Lynch", Path: p}, book)
	})

	t.Run("Generic formats use the filename", func(t *testing.T) {
		// A real zip with metadata is ignored for non-epub extensions.
		p := testutil.CreateTestEPUB(t, dir, "Kindle_Book.azw3", testutil.EPUBMetadata{Title: "Ignored"})
		book, err := library.Extract(p)
		require.NoError(t, err)
		assert.Equal(t, "Kindle Book", book.Title)
		assert.Equal(t, models.UnknownAuthor, book.Author)
	})

	t.Run("No stem", func(t *testing.T) {
		p := testutil.CreateTestFile(t, dir, "sub/_.pdf", "")
		_, err := library.Extract(p)
		assert.ErrorIs(t, err, library.ErrNoStem)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := library.Extract(filepath.Join(dir, "notes.txt"))
		assert.ErrorIs(t, err, library.ErrUnsupportedFormat)
	})
}
