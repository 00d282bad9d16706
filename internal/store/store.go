// Package store provides the persistent vocabulary store: an in-memory
// relational engine made durable through full-image snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/skawahara/tango/schemas"
)

// ErrPersist is returned when the durable snapshot cannot be written.
// Callers that mutate and never confirm the flush risk losing state
// across restarts, so this must not be swallowed.
var ErrPersist = errors.New("snapshot write failed")

// Store owns the single engine handle and the durable snapshot channel.
// All mutations go through Mutate, which serializes writers with an
// explicit lock and flushes a full image after every committed transaction.
type Store struct {
	snapshotPath string

	mu sync.Mutex
	db *sqlx.DB
}

// New creates a store whose durable snapshot lives at snapshotPath.
// The engine is materialized lazily on first use.
func New(snapshotPath string) *Store {
	return &Store{snapshotPath: snapshotPath}
}

// Open returns the engine handle, materializing it on first call. A prior
// snapshot is hydrated into the engine; otherwise the schema is
// bootstrapped inside one transaction and an initial snapshot is written.
func (s *Store) Open(ctx context.Context) (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked(ctx)
}

func (s *Store) openLocked(ctx context.Context) (*sqlx.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}
	// The engine lives in a single connection. A second connection would
	// see a different empty in-memory database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.PingContext() > %w", err)
	}

	if _, statErr := os.Stat(s.snapshotPath); statErr == nil {
		if err := s.hydrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		if err := s.bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		s.db = db
		if err := s.persistLocked(ctx); err != nil {
			s.db = nil
			_ = db.Close()
			return nil, err
		}
		return s.db, nil
	}

	s.db = db
	return s.db, nil
}

// hydrate copies schema and data from the snapshot file into the engine.
func (s *Store) hydrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "ATTACH DATABASE ? AS snapshot", s.snapshotPath); err != nil {
		return fmt.Errorf("db.ExecContext(attach snapshot) > %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(ctx, "DETACH DATABASE snapshot")
	}()

	type object struct {
		Name string `db:"name"`
		Type string `db:"type"`
		SQL  string `db:"sql"`
	}
	var objects []object
	if err := db.SelectContext(ctx, &objects,
		`SELECT name, type, sql FROM snapshot.sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'`); err != nil {
		return fmt.Errorf("db.SelectContext(snapshot schema) > %w", err)
	}
	// Tables first so indexes find their targets.
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].Type == "table" && objects[j].Type != "table"
	})

	for _, obj := range objects {
		if _, err := db.ExecContext(ctx, obj.SQL); err != nil {
			return fmt.Errorf("db.ExecContext(recreate %s) > %w", obj.Name, err)
		}
	}
	for _, obj := range objects {
		if obj.Type != "table" {
			continue
		}
		copyStmt := fmt.Sprintf("INSERT INTO main.%q SELECT * FROM snapshot.%q", obj.Name, obj.Name)
		if _, err := db.ExecContext(ctx, copyStmt); err != nil {
			return fmt.Errorf("db.ExecContext(copy %s) > %w", obj.Name, err)
		}
	}
	return nil
}

// bootstrap executes the embedded DDL inside one transaction.
func (s *Store) bootstrap(ctx context.Context, db *sqlx.DB) error {
	var scripts []string
	err := fs.WalkDir(schemas.Bootstrap, "bootstrap", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		content, readErr := fs.ReadFile(schemas.Bootstrap, path)
		if readErr != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", path, readErr)
		}
		scripts = append(scripts, string(content))
		return nil
	})
	if err != nil {
		return fmt.Errorf("fs.WalkDir(bootstrap) > %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	for _, script := range scripts {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("tx.ExecContext(bootstrap) > %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// Persist serializes the entire current database image and writes it, as
// one unit, to the snapshot path.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return fmt.Errorf("%w: store is not open", ErrPersist)
	}
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		return fmt.Errorf("%w: os.MkdirAll() > %v", ErrPersist, err)
	}

	tmpPath := s.snapshotPath + ".tmp"
	// VACUUM INTO refuses to overwrite an existing file.
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: os.Remove(%s) > %v", ErrPersist, tmpPath, err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", tmpPath); err != nil {
		return fmt.Errorf("%w: db.ExecContext(vacuum into) > %v", ErrPersist, err)
	}
	if err := os.Rename(tmpPath, s.snapshotPath); err != nil {
		return fmt.Errorf("%w: os.Rename() > %v", ErrPersist, err)
	}
	return nil
}

// Mutate runs fn inside one transaction while holding the write lock, then
// flushes a snapshot in a terminal cleanup step regardless of outcome. The
// durable image is therefore always the pre-mutation state or the fully
// committed post-mutation state, never partial.
func (s *Store) Mutate(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.openLocked(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}

	defer func() {
		if persistErr := s.persistLocked(ctx); persistErr != nil && err == nil {
			err = persistErr
		}
	}()

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// Close releases the engine handle. The snapshot on disk is untouched.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("db.Close() > %w", err)
	}
	return nil
}
