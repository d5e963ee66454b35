// Package storage elige el backend del dataset según la config:
// DB_DSN => postgres, SQLITE_PATH => sqlite, si no => memoria.
package storage

import (
	"context"
	"fmt"

	"puppy-store/internal/adapters/storage/memory"
	"puppy-store/internal/adapters/storage/migrations"
	pg "puppy-store/internal/adapters/storage/postgres"
	"puppy-store/internal/adapters/storage/sqlite"
	"puppy-store/internal/dataset"
	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/platform/config"
	"puppy-store/internal/platform/logger"
)

// Open carga el dataset y devuelve el repo listo para usar. closeFn libera la DB (no-op en memoria).
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (repo puppies.Repository, closeFn func() error, err error) {
	if log == nil {
		log = logger.Nop()
	}
	noop := func() error { return nil }

	all, err := loadDataset(cfg.DatasetPath)
	if err != nil {
		return nil, noop, err
	}

	switch {
	case cfg.DSN != "":
		if err := migrations.UpPostgres(cfg.DSN); err != nil {
			return nil, noop, err
		}
		db, err := pg.Open(ctx, cfg.DSN, pg.PoolConfig{
			MaxOpenConns:    cfg.PGMaxOpenConns,
			MaxIdleConns:    cfg.PGMaxIdleConns,
			ConnMaxLifetime: cfg.PGConnMaxLifetime,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		r := pg.NewPuppiesRepo(db)
		n, err := r.Seed(ctx, all)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("postgres seed: %w", err)
		}
		log.Info("dataset ready", map[string]any{"storage": "postgres", "seeded": n})
		return r, db.Close, nil

	case cfg.SQLitePath != "":
		// Open crea el directorio; las migraciones van después
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("sqlite: %w", err)
		}
		if err := migrations.UpSQLite(cfg.SQLitePath); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		r := sqlite.NewPuppiesRepo(db)
		n, err := r.Seed(ctx, all)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("sqlite seed: %w", err)
		}
		log.Info("dataset ready", map[string]any{"storage": "sqlite", "path": cfg.SQLitePath, "seeded": n})
		return r, db.Close, nil

	default:
		r, err := memory.NewPuppyRepo(all)
		if err != nil {
			return nil, noop, err
		}
		log.Info("dataset ready", map[string]any{"storage": "memory", "records": len(all)})
		return r, noop, nil
	}
}

func loadDataset(path string) ([]puppies.Puppy, error) {
	if path == "" {
		return dataset.Default()
	}
	return dataset.LoadFile(path)
}
