// This file holds the errors returned by the scan pipeline and the logic that
// sorts metadata failures into user-facing categories.

package library

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/vrsandeep/storysphere/internal/models"
)

var (
	// ErrDirectoryNotFound is returned when a scan root is missing, unreadable
	// or not a directory. The whole scan is aborted.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrNoStem is returned when a file name has nothing left once the
	// extension is removed. Such files are skipped.
	ErrNoStem = errors.New("file name has no stem")

	// ErrUnsupportedFormat is returned when a single file is added whose
	// extension is not one of the recognized book formats.
	ErrUnsupportedFormat = errors.New("unsupported book format")
)

// Failures of the structured EPUB reader. They never leave the package
// except as a DegradedFile reason.
var (
	errNotAnArchive     = errors.New("not a zip container")
	errMissingContainer = errors.New("missing META-INF/container.xml")
	errMissingPackage   = errors.New("no package document in container")
	errInvalidXML       = errors.New("invalid metadata document")
)

// categorizeError categorizes extraction errors into user-friendly categories
func categorizeError(err error) models.ExtractError {
	switch {
	case errors.Is(err, errNotAnArchive):
		return models.ErrorCorruptedArchive
	case errors.Is(err, errMissingContainer), errors.Is(err, errMissingPackage):
		return models.ErrorMissingMetadata
	case errors.Is(err, errInvalidXML):
		return models.ErrorInvalidFormat
	case errors.Is(err, fs.ErrPermission):
		return models.ErrorIOError
	}

	// The zip readers used by the archive layer do not share a sentinel,
	// so fall back to the message.
	errorStr := strings.ToLower(err.Error())
	if strings.Contains(errorStr, "not a valid zip file") ||
		strings.Contains(errorStr, "zip: ") ||
		strings.Contains(errorStr, "unexpected eof") {
		return models.ErrorCorruptedArchive
	}
	if strings.Contains(errorStr, "failed to open") || strings.Contains(errorStr, "permission denied") {
		return models.ErrorIOError
	}

	// Default to invalid format for unknown errors
	return models.ErrorInvalidFormat
}
