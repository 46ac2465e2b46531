// Package sqlite provides a SQLite-backed match store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gabrilend/gen-realms/internal/store"
)

//go:embed schema.sql
var schema string

// Store persists matches in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite match store and creates its table.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts a match or replaces the stored state of an existing one.
func (s *Store) Save(ctx context.Context, m store.Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(m.ID)
	if id == "" {
		return fmt.Errorf("match id is required")
	}
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO matches (id, state, turn, over, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   state = excluded.state,
		   turn = excluded.turn,
		   over = excluded.over,
		   updated_at = excluded.updated_at`,
		id,
		m.State,
		m.Turn,
		m.Over,
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

// Load returns one match by id.
func (s *Store) Load(ctx context.Context, id string) (store.Match, error) {
	if err := ctx.Err(); err != nil {
		return store.Match{}, err
	}
	if s == nil || s.sqlDB == nil {
		return store.Match{}, fmt.Errorf("storage is not configured")
	}

	var (
		m         store.Match
		updatedAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, state, turn, over, updated_at FROM matches WHERE id = ?`,
		strings.TrimSpace(id),
	)
	if err := row.Scan(&m.ID, &m.State, &m.Turn, &m.Over, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Match{}, store.ErrNotFound
		}
		return store.Match{}, fmt.Errorf("load match: %w", err)
	}
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}

// Delete removes one match.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns every stored match id in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan match id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return ids, nil
}
