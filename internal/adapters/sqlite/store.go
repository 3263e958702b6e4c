// Package sqlite implements the expansion cache storage on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed schema.sql
var schemaSQL string

const schemaVersion = 1

const selectColumns = `title, rev_id, content_hash, expanded_code, templates,
	last_changed_template, last_changed_at, created_at`

// Store implements ports.ExpansionStore on a single SQLite connection.
type Store struct {
	db *sql.DB
}

// Opener implements ports.ExpansionStoreOpener.
type Opener struct{}

// Open implements ports.ExpansionStoreOpener.
func (Opener) Open(path string) (ports.ExpansionStore, error) {
	return Open(path)
}

// Open creates or opens the database at path. domain.MemoryPath opens a private in-memory
// database that lives as long as the store.
func Open(path string) (*Store, error) {
	if path != domain.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, err.Error()), "path", path)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, err.Error()), "path", path)
	}

	// One connection: SQLite has a single writer and an in-memory database is private to its
	// connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, err.Error()), "path", path)
	}

	if err := migrate(db, path != domain.MemoryPath); err != nil {
		_ = db.Close()
		return nil, zerr.With(err, "path", path)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB, onDisk bool) error {
	if onDisk {
		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
			"PRAGMA busy_timeout = 5000",
		} {
			if _, err := db.Exec(pragma); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, err.Error()), "pragma", pragma)
			}
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return zerr.Wrap(domain.ErrCacheOpenFailed, err.Error())
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return zerr.Wrap(domain.ErrCacheOpenFailed, err.Error())
	}
	if version > schemaVersion {
		return zerr.With(zerr.Wrap(domain.ErrCacheOpenFailed, "cache was written by a newer version"),
			"schema_version", version)
	}
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		return zerr.Wrap(domain.ErrCacheOpenFailed, err.Error())
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the newest entry for key created strictly after notBefore, or nil.
func (s *Store) Lookup(ctx context.Context, key domain.ExpansionKey, notBefore time.Time) (*domain.ExpansionEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM expansions
		WHERE title = ? AND rev_id = ? AND content_hash = ? AND created_at > ?
		ORDER BY created_at DESC, id DESC LIMIT 1`,
		key.Title, key.RevID, int64(key.ContentHash), encodeTime(notBefore)) //nolint:gosec // stored bit-for-bit

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "title", key.Title)
	}
	return entry, nil
}

// Insert stores a new entry.
func (s *Store) Insert(ctx context.Context, entry domain.ExpansionEntry) error {
	templates, err := json.Marshal(nonNil(entry.Templates))
	if err != nil {
		return zerr.Wrap(domain.ErrCacheWriteFailed, err.Error())
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO expansions (title, rev_id, content_hash, expanded_code, templates,
		last_changed_template, last_changed_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Key.Title, entry.Key.RevID, int64(entry.Key.ContentHash), //nolint:gosec // stored bit-for-bit
		entry.ExpandedCode, string(templates),
		entry.LastChangedTemplate, encodeTime(entry.LastChangedAt), encodeTime(entry.CreatedAt))
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "title", entry.Key.Title)
	}
	return nil
}

// List returns every entry of title, newest first.
func (s *Store) List(ctx context.Context, title string) ([]domain.ExpansionEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM expansions WHERE title = ? ORDER BY created_at DESC, id DESC`,
		title)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "title", title)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []domain.ExpansionEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "title", title)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "title", title)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*domain.ExpansionEntry, error) {
	var (
		entry         domain.ExpansionEntry
		hash          int64
		templates     string
		lastChangedAt int64
		createdAt     int64
	)
	if err := row.Scan(&entry.Key.Title, &entry.Key.RevID, &hash, &entry.ExpandedCode, &templates,
		&entry.LastChangedTemplate, &lastChangedAt, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(templates), &entry.Templates); err != nil {
		return nil, err
	}
	entry.Key.ContentHash = uint64(hash) //nolint:gosec // stored bit-for-bit
	entry.LastChangedAt = decodeTime(lastChangedAt)
	entry.CreatedAt = decodeTime(createdAt)
	return &entry, nil
}

// encodeTime stores t as Unix nanoseconds; the zero time is stored as 0.
func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func decodeTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
