package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/store"
)

const ddl = `
CREATE TABLE IF NOT EXISTS memos (
    memo_id    TEXT PRIMARY KEY,
    owner_id   TEXT NOT NULL,
    title      TEXT NOT NULL,
    body       TEXT NOT NULL,
    category   TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_memos_owner ON memos(owner_id);
`

// Open opens (or creates) a SQLite database at the given path, enables WAL
// journal mode, and applies the schema. Pass ":memory:" for an in-memory
// database (used by tests and the CLI's scratch mode).
func Open(path string) (*sql.DB, error) {
	dsn := "file::memory:?mode=memory&cache=shared"
	if path != ":memory:" {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqStore{db: db} }

type sqStore struct{ db *sql.DB }

func (s *sqStore) Memos() store.Memos { return &memos{db: s.db} }

// HealthPing implements health.Pinger for the SQLite-backed store.
func (s *sqStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type memos struct{ db *sql.DB }

func (r *memos) Create(ctx context.Context, m *model.Memo) (*model.Memo, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	var updated interface{}
	if m.UpdatedAt != nil {
		updated = m.UpdatedAt.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO memos (memo_id, owner_id, title, body, category, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)
    `, id, m.OwnerID, m.Title, m.Body, string(m.Category), m.CreatedAt.UTC(), updated)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	return &out, nil
}

func (r *memos) Update(ctx context.Context, ownerID, memoID string, upd model.MemoUpdate) (*model.Memo, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE memos SET title=?, body=?, category=?, updated_at=?
        WHERE owner_id=? AND memo_id=?
    `, upd.Title, upd.Body, string(upd.Category), upd.UpdatedAt.UTC(), ownerID, memoID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.GetByID(ctx, ownerID, memoID)
}

func (r *memos) Delete(ctx context.Context, ownerID, memoID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE owner_id=? AND memo_id=?`, ownerID, memoID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *memos) GetByID(ctx context.Context, ownerID, memoID string) (*model.Memo, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT memo_id, owner_id, title, body, category, created_at, updated_at
        FROM memos WHERE owner_id=? AND memo_id=?
    `, ownerID, memoID)
	return scanMemo(row)
}

func (r *memos) ListByOwner(ctx context.Context, ownerID string) ([]*model.Memo, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT memo_id, owner_id, title, body, category, created_at, updated_at
        FROM memos WHERE owner_id=?
        ORDER BY COALESCE(updated_at, created_at) DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Memo
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanMemo(row rowScanner) (*model.Memo, error) {
	var m model.Memo
	var category string
	var updated sql.NullTime
	if err := row.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Body, &category, &m.CreatedAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	m.Category = model.Category(category)
	if updated.Valid {
		t := updated.Time.In(time.Local)
		m.UpdatedAt = &t
	}
	m.CreatedAt = m.CreatedAt.In(time.Local)
	return &m, nil
}
