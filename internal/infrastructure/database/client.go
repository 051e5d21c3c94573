package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	DriverLibsql = "libsql"
	DriverSQLite = "sqlite"
)

// Config selects the database. Remote Turso URLs (libsql://, https://) need
// an auth token; local files work with either driver.
type Config struct {
	URL       string
	AuthToken string
	Driver    string
}

// Client wraps a SQL database connection with Turso-specific retry logic.
type Client struct {
	*sql.DB
	Driver string
}

// Open connects and pings the database.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverLibsql
	}

	dsn, err := dataSourceName(driver, cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	switch {
	case driver == DriverSQLite && isMemory(cfg.URL):
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	case driver == DriverLibsql && isRemote(cfg.URL):
		// Turso aggressively closes idle Hrana streams, so never keep idle connections.
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(0)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{DB: db, Driver: driver}, nil
}

func dataSourceName(driver string, cfg Config) (string, error) {
	switch driver {
	case DriverSQLite:
		// Pragmas in the DSN apply to every pooled connection.
		if strings.Contains(cfg.URL, "_pragma=foreign_keys") {
			return cfg.URL, nil
		}
		sep := "?"
		if strings.Contains(cfg.URL, "?") {
			sep = "&"
		}
		return cfg.URL + sep + "_pragma=foreign_keys(1)", nil
	case DriverLibsql:
		if !isRemote(cfg.URL) {
			return cfg.URL, nil
		}
		if cfg.AuthToken == "" {
			return "", fmt.Errorf("auth token is required for remote database %s", cfg.URL)
		}
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database URL: %w", err)
		}
		q := u.Query()
		q.Set("authToken", cfg.AuthToken)
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isRemote(dsn string) bool {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return false
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// IsStreamError checks if an error is a Turso "stream not found" error.
func IsStreamError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "stream not found")
}

// WithRetry executes a function with retry logic for Turso stream errors.
// It retries up to maxRetries times when encountering "stream not found" errors.
func WithRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}

		if !IsStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return result, err
}
