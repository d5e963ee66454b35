// Package config lee la configuración desde env (y un .env opcional).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"puppy-store/internal/platform/logger"
)

type Config struct {
	Port    string
	AppName string
	Log     LogConfig
	Storage StorageConfig
	Fetch   FetchConfig

	// DebugRoutes monta /debug/simulate-error.
	DebugRoutes bool
	// APIURL: si está seteado, la TUI consume la API HTTP en vez del Service en proceso.
	APIURL string
}

type LogConfig struct {
	Level  string
	Format string
	// File: destino de logs de la TUI (vacío = sin logs).
	File string
}

// StorageConfig: DB_DSN (postgres) tiene prioridad sobre SQLITE_PATH; sin ninguno, memoria.
type StorageConfig struct {
	DSN         string
	SQLitePath  string
	DatasetPath string

	// pool de postgres (0 = default del adapter)
	PGMaxOpenConns    int
	PGMaxIdleConns    int
	PGConnMaxLifetime time.Duration
}

type FetchConfig struct {
	Delay         time.Duration
	PageSize      int
	SimulateError bool
	SimulateEmpty bool
}

// Load lee .env (si existe) y luego env vars. Las env vars ya seteadas ganan al .env.
func Load(envFiles ...string) (Config, error) {
	// .env es opcional
	_ = godotenv.Load(envFiles...)

	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("app_name", "puppy-store")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 4)
	v.SetDefault("db.max_idle_conns", 4)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("sqlite.path", "")
	v.SetDefault("dataset.path", "")
	v.SetDefault("fetch.delay", "700ms")
	v.SetDefault("fetch.page_size", 12)
	v.SetDefault("simulate.error", false)
	v.SetDefault("simulate.empty", false)
	v.SetDefault("debug.routes", false)
	v.SetDefault("api.url", "")

	// log.level -> LOG_LEVEL, fetch.page_size -> FETCH_PAGE_SIZE, etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	delay, err := time.ParseDuration(strings.TrimSpace(v.GetString("fetch.delay")))
	if err != nil {
		return Config{}, fmt.Errorf("FETCH_DELAY: %w", err)
	}
	if delay < 0 {
		return Config{}, fmt.Errorf("FETCH_DELAY must be >= 0, got %s", delay)
	}

	lifetime, err := time.ParseDuration(strings.TrimSpace(v.GetString("db.conn_max_lifetime")))
	if err != nil {
		return Config{}, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}

	pageSize := v.GetInt("fetch.page_size")
	if pageSize <= 0 {
		return Config{}, fmt.Errorf("FETCH_PAGE_SIZE must be > 0, got %d", pageSize)
	}

	return Config{
		Port:    strings.TrimSpace(v.GetString("port")),
		AppName: strings.TrimSpace(v.GetString("app_name")),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   strings.TrimSpace(v.GetString("log.file")),
		},
		Storage: StorageConfig{
			DSN:         strings.TrimSpace(v.GetString("db.dsn")),
			SQLitePath:  strings.TrimSpace(v.GetString("sqlite.path")),
			DatasetPath: strings.TrimSpace(v.GetString("dataset.path")),

			PGMaxOpenConns:    v.GetInt("db.max_open_conns"),
			PGMaxIdleConns:    v.GetInt("db.max_idle_conns"),
			PGConnMaxLifetime: lifetime,
		},
		Fetch: FetchConfig{
			Delay:         delay,
			PageSize:      pageSize,
			SimulateError: v.GetBool("simulate.error"),
			SimulateEmpty: v.GetBool("simulate.empty"),
		},
		DebugRoutes: v.GetBool("debug.routes"),
		APIURL:      strings.TrimSpace(v.GetString("api.url")),
	}, nil
}

// HTTPWriteTimeout cubre el delay simulado del fetch más un margen para escribir la respuesta.
func (c Config) HTTPWriteTimeout() time.Duration {
	return c.Fetch.Delay + 10*time.Second
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// LoggerOptions traduce la config al logger de plataforma.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    c.AppName,
	}
}
