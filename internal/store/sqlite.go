package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Register the pure-Go sqlite driver under the name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/margadarshak/margadarshak-api/internal"
)

const profilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	doc        TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps each profile as a JSON document keyed by user id.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// The parent directory is created if missing. Use ":memory:" in tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir for %q: %w", path, err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %q: %w", path, err)
	}
	if _, err := db.Exec(profilesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, p internal.UserProfile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("sqlite: encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET doc = excluded.doc, created_at = excluded.created_at, updated_at = excluded.updated_at`,
		p.UserID, string(doc), p.CreatedAt.UTC().Format(time.RFC3339Nano), p.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: put %q: %w", p.UserID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (internal.UserProfile, error) {
	return getProfile(ctx, s.db, userID)
}

func (s *SQLiteStore) Update(ctx context.Context, userID string, fn func(*internal.UserProfile) error) (internal.UserProfile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	p, err := getProfile(ctx, tx, userID)
	if err != nil {
		return internal.UserProfile{}, err
	}
	if err := fn(&p); err != nil {
		return internal.UserProfile{}, err
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: encode profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET doc = ?, updated_at = ? WHERE user_id = ?`,
		string(doc), p.UpdatedAt.UTC().Format(time.RFC3339Nano), userID); err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: update %q: %w", userID, err)
	}
	if err := tx.Commit(); err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: commit: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProfile(ctx context.Context, q queryer, userID string) (internal.UserProfile, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE user_id = ?`, userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return internal.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: get %q: %w", userID, err)
	}
	var p internal.UserProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return internal.UserProfile{}, fmt.Errorf("sqlite: decode %q: %w", userID, err)
	}
	return p, nil
}
