package main

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/vrsandeep/storysphere/internal/config"
	"github.com/vrsandeep/storysphere/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
)

func main() {
	config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	// Load configuration from config.yml, the environment and flags
	cfg, err := config.LoadWithFlags(pflag.CommandLine)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Could not open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	app := core.NewWithConfig(cfg)
	root := cfg.Library.Path

	log.Printf("Starting scan of library at: %s", root)
	ch, err := app.StartScan(root)
	if err != nil {
		log.Fatalf("Could not start scan: %v", err)
	}
	out := <-ch
	if out.Err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", out.Err)
		os.Exit(1)
	}
	added := app.ApplyScan(out.Value)

	for _, b := range app.Books() {
		line := titleStyle.Render(b.Title) + " — " + b.Author
		if b.HasFile() {
			line += " " + mutedStyle.Render("("+b.Path+")")
		}
		fmt.Println(line)
	}
	for _, d := range out.Value.Degraded {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("degraded: %s (%s)", d.Path, d.Reason)))
	}

	if len(out.Value.Books) == 0 {
		fmt.Println("No books found in that folder.")
		return
	}
	fmt.Printf("Done. %d new book(s), %d found, %d degraded, %d skipped.\n",
		added, len(out.Value.Books), len(out.Value.Degraded), out.Value.Skipped)
}
