package services

import (
	"context"
	"sort"

	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/store"
)

// MemoService orchestrates memo-related use cases on top of the store.
type MemoService struct {
	store store.Store
}

func NewMemoService(s store.Store) *MemoService {
	return &MemoService{store: s}
}

func (s *MemoService) CreateMemo(ctx context.Context, m *model.Memo) (*model.Memo, error) {
	return s.store.Memos().Create(ctx, m)
}

func (s *MemoService) UpdateMemo(ctx context.Context, ownerID, memoID string, upd model.MemoUpdate) (*model.Memo, error) {
	return s.store.Memos().Update(ctx, ownerID, memoID, upd)
}

func (s *MemoService) DeleteMemo(ctx context.Context, ownerID, memoID string) error {
	return s.store.Memos().Delete(ctx, ownerID, memoID)
}

func (s *MemoService) GetMemo(ctx context.Context, ownerID, memoID string) (*model.Memo, error) {
	return s.store.Memos().GetByID(ctx, ownerID, memoID)
}

// ListMemos returns the owner's memos ordered by effective timestamp
// descending. The sort is stable so equal timestamps retain fetch order.
func (s *MemoService) ListMemos(ctx context.Context, ownerID string) ([]*model.Memo, error) {
	out, err := s.store.Memos().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveTime().After(out[j].EffectiveTime())
	})
	return out, nil
}
