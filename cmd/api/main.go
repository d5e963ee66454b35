// @title Puppy Store API
// @version 1.0
// @description Listado paginado de cachorros y detalle, sobre un dataset estático.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puppy-store/internal/adapters/storage"
	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/platform/config"
	"puppy-store/internal/platform/logger"
	"puppy-store/internal/router"
)

func main() {
	if err := run(); err != nil {
		logger.NewFromEnv().Error("api stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LoggerOptions())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeRepo()

	svc := puppies.NewService(repo, puppies.Options{
		Delay:         cfg.Fetch.Delay,
		SimulateError: puppies.NewSwitch(cfg.Fetch.SimulateError),
		SimulateEmpty: cfg.Fetch.SimulateEmpty,
	})

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Service:     svc,
			Logger:      log,
			DebugRoutes: cfg.DebugRoutes,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":          cfg.Addr(),
			"fetch_delay":   cfg.Fetch.Delay.String(),
			"write_timeout": srv.WriteTimeout.String(),
			"debug":         cfg.DebugRoutes,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}
