package library

import (
	"path/filepath"
	"strings"
)

// Format selects how metadata is resolved for a book file.
type Format int

const (
	// FormatUnsupported marks files the scanner ignores.
	FormatUnsupported Format = iota
	// FormatStructuredEPUB files are opened as containers and their package
	// metadata is read, falling back to the filename.
	FormatStructuredEPUB
	// FormatGenericFallback files only get filename-derived metadata.
	FormatGenericFallback
)

func (f Format) String() string {
	switch f {
	case FormatStructuredEPUB:
		return "epub"
	case FormatGenericFallback:
		return "generic"
	default:
		return "unsupported"
	}
}

// bookFormats maps every recognized extension to its format.
var bookFormats = map[string]Format{
	".epub": FormatStructuredEPUB,
	".mobi": FormatGenericFallback,
	".azw3": FormatGenericFallback,
	".pdf":  FormatGenericFallback,
}

// FormatOf returns the format for a path based on its extension, compared
// case-insensitively.
func FormatOf(path string) Format {
	if f, ok := bookFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatUnsupported
}

// IsSupportedBook checks if a file name has a recognized book extension.
func IsSupportedBook(name string) bool {
	return FormatOf(name) != FormatUnsupported
}
