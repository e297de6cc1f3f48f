package library

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/vrsandeep/storysphere/internal/models"
)

// Extract resolves a Book for one file. Structured metadata failures degrade
// to the filename instead of failing; only ErrNoStem and ErrUnsupportedFormat
// are returned.
func Extract(filePath string) (models.Book, error) {
	book, _, err := extract(context.Background(), filePath)
	return book, err
}

// ExtractFile is Extract for a path given by the user. The path is made
// absolute so it matches the paths Scan produces.
func ExtractFile(filePath string) (models.Book, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return models.Book{}, fmt.Errorf("cannot resolve %s: %w", filePath, err)
	}
	return Extract(abs)
}

// extract is Extract plus the structured-metadata failure, if any, so the
// scanner can report it. A non-nil degraded error never comes with a
// non-nil err.
func extract(ctx context.Context, filePath string) (book models.Book, degraded error, err error) {
	format := FormatOf(filePath)
	if format == FormatUnsupported {
		return models.Book{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}

	title, author, err := ParseFilename(StemOf(filePath))
	if err != nil {
		return models.Book{}, nil, fmt.Errorf("%w: %s", err, filePath)
	}

	if format == FormatStructuredEPUB {
		md, mdErr := readEPUBMetadata(ctx, filePath)
		if mdErr != nil {
			log.Printf("Degraded metadata for %s: %v", filePath, mdErr)
			degraded = mdErr
		} else {
			if md.Title != "" {
				title = md.Title
			}
			author = models.UnknownAuthor
			if md.Creator != "" {
				author = md.Creator
			}
		}
	}

	book, err = models.NewBook(title, author, filePath)
	if err != nil {
		// ParseFilename never yields a blank title, so this only guards
		// against a stem made purely of whitespace-like runes.
		return models.Book{}, nil, fmt.Errorf("%w: %s", ErrNoStem, filePath)
	}
	return book, degraded, nil
}
