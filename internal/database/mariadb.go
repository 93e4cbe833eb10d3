// Package database provides connection setup for MariaDB and Redis.
// Both connections are created once at startup and shared with the plugins
// through dependency injection. This package owns the connection lifecycle
// (open, configure pool, ping, close) and schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MariaDB driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/AmarTuli/Fred-AI/internal/config"
)

// pingAttempts bounds how long startup waits for MariaDB. The backoff
// doubles from one second and is capped at ten, so the worst case is a
// little over a minute.
const pingAttempts = 8

// NewMariaDB opens the users database pool and waits until it answers a
// ping. The wait is abandoned early if ctx is cancelled (e.g. SIGTERM during
// a cold start).
func NewMariaDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mariadb connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := waitForPing(ctx, db.PingContext); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// waitForPing retries ping with exponential backoff. MariaDB may still be
// starting when the app container launches.
func waitForPing(ctx context.Context, ping func(context.Context) error) error {
	backoff := time.Second
	var lastErr error

	for attempt := 1; attempt <= pingAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = ping(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}

		slog.Warn("mariadb not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for mariadb: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 10*time.Second)
	}

	return fmt.Errorf("pinging mariadb after %d attempts: %w", pingAttempts, lastErr)
}
