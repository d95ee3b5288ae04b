package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

// OpenSQLite opens (or creates) the SQLite database at path with WAL
// journaling enabled and verifies the connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// every connection to :memory: is a separate database
	if path == MemoryDSN {
		conn.SetMaxOpenConns(1)
	}

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
	} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return conn, nil
}
