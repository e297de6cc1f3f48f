// This file implements the in-memory library collection. Books are keyed by
// their source path; entries without a path never collide.

package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/vrsandeep/storysphere/internal/models"
)

// ErrDuplicatePath is returned when a single add targets a path that is
// already in the library.
var ErrDuplicatePath = errors.New("book already in library")

// Library holds the books discovered or added during a session.
type Library struct {
	mu    sync.RWMutex
	books []models.Book // insertion order
	paths map[string]struct{}
}

// NewLibrary creates a Library holding the given books. Duplicates among
// them are dropped.
func NewLibrary(books ...models.Book) *Library {
	l := &Library{paths: make(map[string]struct{})}
	l.AddMany(books)
	return l
}

// AddOne adds a single book and fails with ErrDuplicatePath when its path is
// already held.
func (l *Library) AddOne(book models.Book) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.insert(book) {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, book.Path)
	}
	return nil
}

// AddMany merges books into the library, silently dropping any whose path is
// already held or repeats earlier in the batch. It returns how many were added.
func (l *Library) AddMany(books []models.Book) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := 0
	for _, b := range books {
		if l.insert(b) {
			added++
		}
	}
	return added
}

// insert must be called with the write lock held.
func (l *Library) insert(book models.Book) bool {
	if book.HasFile() {
		key := pathKey(book.Path)
		if _, exists := l.paths[key]; exists {
			return false
		}
		l.paths[key] = struct{}{}
	}
	l.books = append(l.books, book)
	return true
}

// Books returns a copy of the library in display order.
func (l *Library) Books() []models.Book {
	l.mu.RLock()
	books := make([]models.Book, len(l.books))
	copy(books, l.books)
	l.mu.RUnlock()

	models.SortBooks(books)
	return books
}

// Contains reports whether a book with this path is held.
func (l *Library) Contains(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.paths[pathKey(path)]
	return ok
}

// Len returns the number of books held.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.books)
}

// Reset removes every book.
func (l *Library) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.books = nil
	l.paths = make(map[string]struct{})
}

func pathKey(path string) string {
	return filepath.Clean(path)
}
