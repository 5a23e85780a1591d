package store

import (
	"context"

	"github.com/memoflow/memoflow/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Memos() Memos
}

// Memos is the keyed memo storage boundary. Every read and write is scoped
// by owner id; cross-owner access is never requested. Timestamps supplied by
// callers are stored verbatim.
type Memos interface {
	Create(ctx context.Context, m *model.Memo) (*model.Memo, error)
	Update(ctx context.Context, ownerID, memoID string, upd model.MemoUpdate) (*model.Memo, error)
	Delete(ctx context.Context, ownerID, memoID string) error
	GetByID(ctx context.Context, ownerID, memoID string) (*model.Memo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Memo, error)
}
