package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/noah-isme/attendance-bridge/pkg/config"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

// Store wraps the single embedded SQLite handle shared by every repository.
// SQLite allows one writer at a time; multi-statement writes go through InTx
// which also serialises them in-process.
type Store struct {
	db *sqlx.DB
	mu chan struct{}
}

// Open creates the database file if needed and returns the shared handle.
func Open(cfg config.StoreConfig) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "store path is not writable")
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "cannot open store")
	}

	// A file-backed store gains nothing from connection pooling and the
	// single connection keeps writer semantics predictable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "cannot open store")
	}

	return &Store{db: db, mu: make(chan struct{}, 1)}, nil
}

// NewFromDB wraps an existing handle. Used by tests with sqlmock.
func NewFromDB(db *sqlx.DB) *Store {
	return &Store{db: db, mu: make(chan struct{}, 1)}
}

// DB exposes the underlying handle for read queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close releases the handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn inside a transaction, serialised against other writers.
// The transaction is rolled back when fn returns an error or the context
// is cancelled while waiting for the write slot.
func (s *Store) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	select {
	case s.mu <- struct{}{}:
		defer func() { <-s.mu }()
	case <-ctx.Done():
		return ctx.Err()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "cannot begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "cannot commit transaction")
	}
	return nil
}
