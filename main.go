package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/vrsandeep/storysphere/internal/config"
	"github.com/vrsandeep/storysphere/internal/core"
	"github.com/vrsandeep/storysphere/internal/tui"
)

func main() {
	config.RegisterFlags(pflag.CommandLine)
	pflag.Parse()

	cfg, err := config.LoadWithFlags(pflag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "storysphere")
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	app := core.NewWithConfig(cfg)

	if _, err := tea.NewProgram(tui.New(app), tea.WithAltScreen()).Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
