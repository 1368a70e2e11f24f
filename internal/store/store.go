// Package store persists hunters, their daily quest batches and the event
// log in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Hunters HunterRepo
	Quests  QuestRepo
	Events  EventRepo
}

// connPragmas are applied to every pooled connection through the DSN.
var connPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withConnParams(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// withConnParams appends per-connection pragmas and immediate write
// transactions to dsn unless the caller already set pragmas.
func withConnParams(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	params := make([]string, 0, len(connPragmas)+1)
	for _, p := range connPragmas {
		params = append(params, "_pragma="+p)
	}
	params = append(params, "_txlock=immediate")

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// applyPragmas sets database-level options that persist in the file.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HunterRepo returns a HunterRepo backed by this store.
func (s *Store) HunterRepo() HunterRepo { return &hunterRepo{q: s.db} }

// QuestRepo returns a QuestRepo backed by this store.
func (s *Store) QuestRepo() QuestRepo { return &questRepo{q: s.db} }

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo { return &eventRepo{q: s.db} }

// Repos returns repositories that run outside a transaction.
func (s *Store) Repos() Repos {
	return Repos{Hunters: s.HunterRepo(), Quests: s.QuestRepo(), Events: s.EventRepo()}
}

// InTx runs fn inside a write transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	r := Repos{
		Hunters: &hunterRepo{q: tx},
		Quests:  &questRepo{q: tx},
		Events:  &eventRepo{q: tx},
	}
	if err := fn(r); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. HUNTER_DB environment variable
// 2. $XDG_DATA_HOME/hunter/hunter.db
// 3. ~/.local/share/hunter/hunter.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("HUNTER_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "hunter", "hunter.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
