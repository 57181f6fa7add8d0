// Package cache provides a durable cache of lowered modules.
//
// Lowering is deterministic: the same IR tree always produces the same
// text. The cache exploits that by keying artifacts on the
// content-addressed module ID, so repeated lowerings of an unchanged
// module are served from SQLite instead of re-walked.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Cache is a SQLite-backed artifact store.
// Uses WAL mode for concurrent read access.
type Cache struct {
	db *sql.DB
}

// Stats summarizes cache contents.
type Stats struct {
	Artifacts int `json:"artifacts"`
}

// Open creates or opens a cache database at the given path. Applies
// required pragmas and the schema automatically; safe to call on an
// existing database.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached text for a module ID. The second return value
// reports whether the artifact was present.
func (c *Cache) Get(ctx context.Context, moduleID string) (string, bool, error) {
	var wat string
	err := c.db.QueryRowContext(ctx,
		`SELECT wat FROM artifacts WHERE module_id = ?`, moduleID).Scan(&wat)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return wat, true, nil
}

// Put records a lowered module and returns its build ID.
//
// Uses ON CONFLICT DO NOTHING for idempotency: lowering is deterministic,
// so a duplicate module ID carries identical text and the existing build
// ID is returned instead.
func (c *Cache) Put(ctx context.Context, moduleID, wat string) (string, error) {
	buildID := uuid.Must(uuid.NewV7()).String()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO artifacts (module_id, build_id, wat, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM artifacts))
		ON CONFLICT(module_id) DO NOTHING
	`, moduleID, buildID, wat)
	if err != nil {
		return "", fmt.Errorf("cache put: %w", err)
	}

	// The insert may have been a no-op; report the build ID actually
	// stored.
	var stored string
	if err := c.db.QueryRowContext(ctx,
		`SELECT build_id FROM artifacts WHERE module_id = ?`, moduleID).Scan(&stored); err != nil {
		return "", fmt.Errorf("cache put: %w", err)
	}
	return stored, nil
}

// Stats returns summary statistics.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM artifacts`).Scan(&s.Artifacts); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return s, nil
}

// Clear removes all cached artifacts.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM artifacts`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
