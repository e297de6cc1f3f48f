// This file defines the data structure for files whose metadata could not be
// read structurally, or which the scanner had to skip.

package models

// DegradedFile records a file or directory the scanner could not fully resolve.
// A degraded file still yields a filename-derived book when it is a book file.
type DegradedFile struct {
	Path   string       `json:"path"`
	Reason ExtractError `json:"reason"`
	Detail string       `json:"detail"`
}

// ExtractError represents the different reasons a file degraded
type ExtractError string

const (
	ErrorCorruptedArchive    ExtractError = "corrupted_archive"
	ErrorMissingMetadata     ExtractError = "missing_metadata"
	ErrorInvalidFormat       ExtractError = "invalid_format"
	ErrorIOError             ExtractError = "io_error"
	ErrorUnreadableDirectory ExtractError = "unreadable_directory"
	ErrorSymlinkCycle        ExtractError = "symlink_cycle"
)

// String returns the human-readable error description
func (e ExtractError) String() string {
	switch e {
	case ErrorCorruptedArchive:
		return "Corrupted Archive"
	case ErrorMissingMetadata:
		return "Missing Metadata"
	case ErrorInvalidFormat:
		return "Invalid Format"
	case ErrorIOError:
		return "I/O Error"
	case ErrorUnreadableDirectory:
		return "Unreadable Directory"
	case ErrorSymlinkCycle:
		return "Symlink Cycle"
	default:
		return "Unknown Error"
	}
}
