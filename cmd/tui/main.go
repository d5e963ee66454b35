package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"puppy-store/internal/adapters/puppiesapi"
	"puppy-store/internal/adapters/storage"
	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/platform/config"
	"puppy-store/internal/platform/logger"
	"puppy-store/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// la pantalla es de la TUI; los logs van a archivo si LOG_FILE está seteado
	log := logger.Nop()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		opts := cfg.LoggerOptions()
		opts.Out = f
		log = logger.New(opts)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, closeDeps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDeps()

	m := tui.New(ctx, deps)
	defer m.Close()

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// buildDeps: con API_URL consume la API remota; si no, corre el Service en proceso.
func buildDeps(ctx context.Context, cfg config.Config, log logger.Logger) (tui.Deps, func() error, error) {
	if cfg.APIURL != "" {
		c, err := puppiesapi.New(cfg.APIURL, 10*time.Second)
		if err != nil {
			return tui.Deps{}, nil, err
		}
		return tui.Deps{
			Fetcher:  c,
			Lookup:   c,
			Toggle:   c,
			PageSize: cfg.Fetch.PageSize,
			Logger:   log,
		}, func() error { return nil }, nil
	}

	repo, closeRepo, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	sw := puppies.NewSwitch(cfg.Fetch.SimulateError)
	svc := puppies.NewService(repo, puppies.Options{
		Delay:         cfg.Fetch.Delay,
		SimulateError: sw,
		SimulateEmpty: cfg.Fetch.SimulateEmpty,
	})

	return tui.Deps{
		Fetcher:  svc,
		Lookup:   svc,
		Toggle:   tui.LocalToggle{Switch: sw},
		PageSize: cfg.Fetch.PageSize,
		Logger:   log,
	}, closeRepo, nil
}
