package core

import (
	"fmt"
	"log"
	"os"

	"github.com/vrsandeep/storysphere/internal/config"
	"github.com/vrsandeep/storysphere/internal/jobs"
	"github.com/vrsandeep/storysphere/internal/library"
	"github.com/vrsandeep/storysphere/internal/models"
	"github.com/vrsandeep/storysphere/internal/store"
)

const scanJobName = "library-scan"

// ScanOutcome is what a background scan delivers.
type ScanOutcome = jobs.Outcome[*library.ScanResult]

// App holds the core components of the application that are shared
// between the TUI and the CLI.
type App struct {
	config  *config.Config
	library *store.Library
	scanner *library.Scanner
	scans   *jobs.Runner[*library.ScanResult]
}

// New sets up and returns a new App instance from config.yml and the
// environment.
func New() (*App, error) {
	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig builds an App around an already loaded configuration.
func NewWithConfig(cfg *config.Config) *App {
	scanner := library.NewScanner(cfg)
	app := &App{
		config:  cfg,
		library: store.NewLibrary(),
		scanner: scanner,
		scans:   jobs.NewRunner(scanJobName, scanner.Scan),
	}
	app.seed()
	log.Println("Core application setup complete.")
	return app
}

func (a *App) Config() *config.Config  { return a.config }
func (a *App) Library() *store.Library { return a.library }

// Books returns the library in display order.
func (a *App) Books() []models.Book {
	return a.library.Books()
}

// StartScan scans root on a background goroutine. The returned channel
// delivers one outcome; pass a successful result to ApplyScan.
func (a *App) StartScan(root string) (<-chan ScanOutcome, error) {
	return a.scans.Run(root)
}

// ScanStatus reports the state of the most recent scan.
func (a *App) ScanStatus() jobs.JobStatus {
	return a.scans.Status()
}

// ApplyScan merges a completed scan into the library and returns how many
// books were new. Books already held are dropped silently.
func (a *App) ApplyScan(res *library.ScanResult) int {
	if res == nil {
		return 0
	}
	added := a.library.AddMany(res.Books)
	log.Printf("Applied scan of %s: %d new of %d found", res.Root, added, len(res.Books))
	return added
}

// AddFile resolves one file and adds it to the library. Unlike ApplyScan it
// fails when the file is already present.
func (a *App) AddFile(path string) (models.Book, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.Book{}, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return models.Book{}, fmt.Errorf("%s is not a regular file", path)
	}

	book, err := library.ExtractFile(path)
	if err != nil {
		return models.Book{}, err
	}
	if err := a.library.AddOne(book); err != nil {
		return models.Book{}, err
	}
	log.Printf("Added %s to the library", book.Path)
	return book, nil
}

// Reset empties the library, seeding the sample books again when enabled.
func (a *App) Reset() {
	a.library.Reset()
	a.seed()
}

func (a *App) seed() {
	if a.config.Library.SeedSamples {
		a.library.AddMany(models.SampleBooks())
	}
}
