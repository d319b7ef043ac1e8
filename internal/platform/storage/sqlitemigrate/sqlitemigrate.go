// Package sqlitemigrate runs forward-only SQL migrations against SQLite.
//
// Each migration is a .sql file. When a file has a "-- +migrate Up" marker
// only the text between it and an optional "-- +migrate Down" marker runs.
// Applied file names are kept in schema_migrations so every file runs once.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

const (
	createLedger = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at INTEGER NOT NULL
)`
	selectApplied = `SELECT 1 FROM schema_migrations WHERE name = ?`
	insertApplied = `INSERT OR IGNORE INTO schema_migrations (name, applied_at) VALUES (?, ?)`
)

// Apply runs the pending migrations found in dir of fsys in lexical order
// and returns the names it ran. Names are recorded relative to fsys.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, dir string) ([]string, error) {
	if db == nil {
		return nil, errors.New("sql db is required")
	}
	if fsys == nil {
		return nil, errors.New("migration filesystem is required")
	}
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" {
		dir = "."
	}
	files, err := sqlFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createLedger); err != nil {
		return nil, fmt.Errorf("create migration ledger: %w", err)
	}

	var ran []string
	for _, file := range files {
		name := path.Join(dir, file)
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return ran, fmt.Errorf("read migration %s: %w", name, err)
		}
		applied, err := applyFile(ctx, db, name, UpSection(string(body)))
		if err != nil {
			return ran, fmt.Errorf("migration %s: %w", name, err)
		}
		if applied {
			ran = append(ran, name)
		}
	}
	return ran, nil
}

func sqlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && path.Ext(entry.Name()) == ".sql" {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// applyFile runs stmt and records name in one transaction. It reports false
// when name was already recorded or stmt is blank.
func applyFile(ctx context.Context, db *sql.DB, name, stmt string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seen int
	switch err := tx.QueryRowContext(ctx, selectApplied, name).Scan(&seen); {
	case err == nil:
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("check ledger: %w", err)
	}
	if strings.TrimSpace(stmt) == "" {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil && !IsAlreadyExistsError(err) {
		return false, fmt.Errorf("exec: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertApplied, name, time.Now().UTC().UnixMilli()); err != nil {
		return false, fmt.Errorf("record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// UpSection returns the forward part of a migration file. Files without an
// Up marker are returned whole.
func UpSection(content string) string {
	_, up, found := strings.Cut(content, upMarker)
	if !found {
		return content
	}
	up, _, _ = strings.Cut(up, downMarker)
	return up
}

// IsAlreadyExistsError reports whether err comes from DDL that had already
// taken effect, such as a table created by an earlier partial run.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}
