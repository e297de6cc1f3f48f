// This file handles the logic for deriving metadata from file names when
// structured metadata is unavailable.

package library

import (
	"path/filepath"
	"strings"

	"github.com/vrsandeep/storysphere/internal/models"
)

// titleAuthorSeparator splits "<title> - <author>" file names.
const titleAuthorSeparator = " - "

// StemOf returns the base name of a path without its extension.
// For example: /books/Dune - Frank_Herbert.epub
// Stem: Dune - Frank_Herbert
func StemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFilename derives a title and author from a file stem.
// For example: The_Lies_of_Locke_Lamora - Scott_Lynch
// Title:  The Lies of Locke Lamora
// Author: Scott Lynch
// Stems without " - " become the title, with models.UnknownAuthor as author.
func ParseFilename(stem string) (title, author string, err error) {
	if strings.TrimSpace(underscoresToSpaces(stem)) == "" {
		return "", "", ErrNoStem
	}

	before, after, found := strings.Cut(stem, titleAuthorSeparator)
	if !found {
		return underscoresToSpaces(stem), models.UnknownAuthor, nil
	}

	title = strings.TrimSpace(underscoresToSpaces(before))
	author = strings.TrimSpace(underscoresToSpaces(after))

	switch {
	case title == "" && author == "":
		title = strings.TrimSpace(underscoresToSpaces(stem))
		author = models.UnknownAuthor
	case title == "":
		// " - Name" has only one name; treat it as the title.
		title, author = author, models.UnknownAuthor
	case author == "":
		author = models.UnknownAuthor
	}
	return title, author, nil
}

func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
