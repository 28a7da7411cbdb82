package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/adapters/tui"
	"zwallpaper/internal/adapters/tui/views"
	"zwallpaper/internal/adapters/viewer"
	"zwallpaper/internal/application"
	"zwallpaper/internal/config"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/wiring"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnvironment()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI; logs go to a file
	logger, logFile, err := logging.NewFile(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	stack, err := wiring.Build(cfg, "", logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := views.NewActions(ctx, stack.Service, application.NewRequestTracker(), viewer.NewOpener())
	app := tui.NewApp(actions, cfg.DownloadsDir())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
