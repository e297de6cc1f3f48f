// This file contains the main logic for scanning a library directory.
// It walks the directory tree, identifies book files, and uses the extractor
// to resolve their metadata.

package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/vrsandeep/storysphere/internal/config"
	"github.com/vrsandeep/storysphere/internal/models"
)

// ScanResult is the complete outcome of one scan.
type ScanResult struct {
	Root     string                `json:"root"`
	Books    []models.Book         `json:"books"`
	Degraded []models.DegradedFile `json:"degraded"`
	Skipped  int                   `json:"skipped"`
}

// Scanner is responsible for discovering books under a directory.
type Scanner struct {
	followSymlinks bool
}

// NewScanner creates a new Scanner instance.
func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{followSymlinks: cfg.Scan.FollowSymlinks}
}

// Scan walks root recursively and returns every recognized book, sorted by
// title. It fails only when root itself cannot be read as a directory.
func (s *Scanner) Scan(root string) (*ScanResult, error) {
	return s.ScanContext(context.Background(), root)
}

// ScanContext is Scan with a context passed down to the container readers.
func (s *Scanner) ScanContext(ctx context.Context, root string) (*ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, absRoot)
	}

	canonRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, absRoot, err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, absRoot, err)
	}

	res := s.walkEntries(ctx, absRoot, entries, []string{canonRoot})
	models.SortBooks(res.books)

	log.Printf("Scan of %s found %d book(s), %d degraded, %d skipped", absRoot, len(res.books), len(res.degraded), res.skipped)
	return &ScanResult{
		Root:     absRoot,
		Books:    res.books,
		Degraded: res.degraded,
		Skipped:  res.skipped,
	}, nil
}

// walkResult is what one subtree contributes to a scan. Subtrees return
// their own results, which the caller concatenates.
type walkResult struct {
	books    []models.Book
	degraded []models.DegradedFile
	skipped  int
}

func (r walkResult) merge(o walkResult) walkResult {
	return walkResult{
		books:    append(r.books, o.books...),
		degraded: append(r.degraded, o.degraded...),
		skipped:  r.skipped + o.skipped,
	}
}

// walkDir reads dir and walks its entries. ancestors holds the canonical
// paths of every directory on the way down, dir included.
func (s *Scanner) walkDir(ctx context.Context, dir string, ancestors []string) walkResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Skipping unreadable directory %s: %v", dir, err)
		return walkResult{degraded: []models.DegradedFile{{
			Path:   dir,
			Reason: models.ErrorUnreadableDirectory,
			Detail: err.Error(),
		}}}
	}
	return s.walkEntries(ctx, dir, entries, ancestors)
}

func (s *Scanner) walkEntries(ctx context.Context, dir string, entries []fs.DirEntry, ancestors []string) walkResult {
	var res walkResult
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			canon := filepath.Join(ancestors[len(ancestors)-1], entry.Name())
			res = res.merge(s.walkDir(ctx, p, withAncestor(ancestors, canon)))
		case entry.Type()&fs.ModeSymlink != 0:
			res = res.merge(s.walkSymlink(ctx, p, ancestors))
		case entry.Type().IsRegular():
			res = res.merge(s.visitFile(ctx, p))
		}
	}
	return res
}

// walkSymlink follows a link to a file, or to a directory when enabled.
// A directory link resolving to one of its own ancestors is a cycle.
func (s *Scanner) walkSymlink(ctx context.Context, p string, ancestors []string) walkResult {
	target, err := os.Stat(p)
	if err != nil {
		log.Printf("Skipping broken symlink %s: %v", p, err)
		return walkResult{}
	}

	if target.Mode().IsRegular() {
		return s.visitFile(ctx, p)
	}
	if !target.IsDir() || !s.followSymlinks {
		return walkResult{}
	}

	canon, err := filepath.EvalSymlinks(p)
	if err != nil {
		log.Printf("Skipping unresolvable symlink %s: %v", p, err)
		return walkResult{}
	}
	if slices.Contains(ancestors, canon) {
		log.Printf("Skipping symlink cycle %s -> %s", p, canon)
		return walkResult{degraded: []models.DegradedFile{{
			Path:   p,
			Reason: models.ErrorSymlinkCycle,
			Detail: "links to " + canon,
		}}}
	}
	return s.walkDir(ctx, p, withAncestor(ancestors, canon))
}

// visitFile extracts one book. Unsupported files contribute nothing.
func (s *Scanner) visitFile(ctx context.Context, p string) walkResult {
	if !IsSupportedBook(p) {
		return walkResult{}
	}

	book, degraded, err := extract(ctx, p)
	if err != nil {
		if errors.Is(err, ErrNoStem) {
			log.Printf("Skipping file without a name: %s", p)
			return walkResult{skipped: 1}
		}
		log.Printf("Skipping %s: %v", p, err)
		return walkResult{skipped: 1}
	}

	res := walkResult{books: []models.Book{book}}
	if degraded != nil {
		res.degraded = []models.DegradedFile{{
			Path:   p,
			Reason: categorizeError(degraded),
			Detail: degraded.Error(),
		}}
	}
	return res
}

// withAncestor returns a new chain; the parent's slice is never written to.
func withAncestor(ancestors []string, canon string) []string {
	return append(slices.Clip(ancestors), canon)
}
