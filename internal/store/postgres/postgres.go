package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Memos() store.Memos { return &memos{db: s.db} }

// HealthPing implements health.Pinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// Ping-only: deployment migrations own the schema.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

type memos struct{ db *sql.DB }

func (r *memos) Create(ctx context.Context, m *model.Memo) (*model.Memo, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO memos (memo_id, owner_id, title, body, category, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, id, m.OwnerID, m.Title, m.Body, string(m.Category), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	return &out, nil
}

func (r *memos) Update(ctx context.Context, ownerID, memoID string, upd model.MemoUpdate) (*model.Memo, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE memos SET title=$1, body=$2, category=$3, updated_at=$4
        WHERE owner_id=$5 AND memo_id=$6
    `, upd.Title, upd.Body, string(upd.Category), upd.UpdatedAt, ownerID, memoID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.GetByID(ctx, ownerID, memoID)
}

func (r *memos) Delete(ctx context.Context, ownerID, memoID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE owner_id=$1 AND memo_id=$2`, ownerID, memoID)
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
        FROM memos WHERE owner_id=$1 AND memo_id=$2
    `, ownerID, memoID)
	return scanMemo(row)
}

func (r *memos) ListByOwner(ctx context.Context, ownerID string) ([]*model.Memo, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT memo_id, owner_id, title, body, category, created_at, updated_at
        FROM memos WHERE owner_id=$1
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
