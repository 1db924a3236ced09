// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

// Package sqlite implements a store that keeps every dataset inside a single
// SQLite database file, one row per dataset with its JSON payload.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kosovotools/kasfetch/internal/logger"
	"github.com/kosovotools/kasfetch/internal/store"
)

const (
	logName = "kasfetch:store:sqlite"

	createTableStatement = `CREATE TABLE IF NOT EXISTS datasets (
	name TEXT PRIMARY KEY,
	fetched_at TEXT NOT NULL,
	payload TEXT NOT NULL
)`
	upsertStatement = `INSERT INTO datasets (name, fetched_at, payload) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`
)

var timeSource = time.Now

var _ store.Store = &Store{}

// Store persists datasets into a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and ensures the datasets
// table exists.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, createTableStatement); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// WriteDataset implements store.Store, replacing any previous payload stored
// under the same name.
func (s *Store) WriteDataset(ctx context.Context, name string, payload any) error {
	log := logger.FromContext(ctx).WithName(logName)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	fetchedAt := timeSource().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, upsertStatement, name, fetchedAt, string(encoded)); err != nil {
		return err
	}

	log.Info("stored dataset", "name", name)
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
