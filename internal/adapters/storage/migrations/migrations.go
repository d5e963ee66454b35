// Package migrations aplica el schema del dataset con golang-migrate.
// Los .sql van embebidos; cada dialecto tiene su directorio.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// UpPostgres aplica las migraciones sobre el DSN (formato URL postgres://).
func UpPostgres(dsn string) error {
	u, err := pgxURL(dsn)
	if err != nil {
		return err
	}
	return up("postgres", u)
}

// UpSQLite aplica las migraciones sobre el archivo sqlite.
func UpSQLite(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("migrations: empty sqlite path")
	}
	return up("sqlite", "sqlite://"+path)
}

// up abre su propia conexión: m.Close() cierra el driver y no debe tocar
// el *sql.DB que usan los repos.
func up(dir, databaseURL string) error {
	src, err := iofs.New(files, dir)
	if err != nil {
		return fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

func pgxURL(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", errors.New("migrations: DB_DSN must be a postgres:// URL")
}
