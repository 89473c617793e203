package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// schemaVersion is recorded in meta. A workspace written by a newer build is
// refused rather than silently misread.
const schemaVersion = 1

const metaSchemaVersion = "schema_version"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), "index.sqlite")
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is locked"
	// when the TUI and a CLI command touch the workspace at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			status TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_seq ON items(seq);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			entity_id TEXT NOT NULL,
			type TEXT NOT NULL,
			actor_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL,
			created_seq INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, created_seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return checkSchemaVersion(ctx, db)
}

func checkSchemaVersion(ctx context.Context, db *sql.DB) error {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, metaSchemaVersion).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES(?, ?)`, metaSchemaVersion, strconv.Itoa(schemaVersion))
		return err
	}
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid schema version %q", raw)
	}
	if v > schemaVersion {
		return fmt.Errorf("workspace schema version %d is newer than supported (%d)", v, schemaVersion)
	}
	return nil
}
