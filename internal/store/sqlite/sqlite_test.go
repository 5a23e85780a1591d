package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/store"
)

// Open(":memory:") shares one named in-memory database across the whole
// process, so each test writes under its own owner id.
func openTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestMemoCRUDRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	const owner = "crud-user"
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	m, err := s.Memos().Create(ctx, &model.Memo{
		OwnerID:   owner,
		Title:     "first",
		Body:      "body",
		Category:  model.CategoryBusiness,
		CreatedAt: created,
		UpdatedAt: &created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	got, err := s.Memos().GetByID(ctx, owner, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "first" || got.Category != model.CategoryBusiness {
		t.Errorf("fetched memo = %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}

	bumped := created.Add(time.Hour)
	upd, err := s.Memos().Update(ctx, owner, m.ID, model.MemoUpdate{
		Title:     "first v2",
		Body:      "body v2",
		Category:  model.CategoryPersonal,
		UpdatedAt: bumped,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Title != "first v2" || upd.Category != model.CategoryPersonal {
		t.Errorf("updated memo = %+v", upd)
	}
	if !upd.CreatedAt.Equal(created) {
		t.Errorf("Update touched CreatedAt: %v", upd.CreatedAt)
	}
	if upd.UpdatedAt == nil || !upd.UpdatedAt.Equal(bumped) {
		t.Errorf("UpdatedAt = %v, want %v", upd.UpdatedAt, bumped)
	}

	if err := s.Memos().Delete(ctx, owner, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Memos().GetByID(ctx, owner, m.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestMissingRowsReturnNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	const owner = "missing-user"

	if _, err := s.Memos().GetByID(ctx, owner, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
	if _, err := s.Memos().Update(ctx, owner, "nope", model.MemoUpdate{UpdatedAt: time.Now()}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Update = %v, want ErrNotFound", err)
	}
	if err := s.Memos().Delete(ctx, owner, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestOwnerScopingHidesOtherOwners(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	mine, err := s.Memos().Create(ctx, &model.Memo{
		OwnerID: "alice", Title: "mine", Category: model.CategoryBusiness, CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Memos().GetByID(ctx, "bob", mine.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner GetByID = %v, want ErrNotFound", err)
	}
	if err := s.Memos().Delete(ctx, "bob", mine.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("cross-owner Delete = %v, want ErrNotFound", err)
	}
	memos, err := s.Memos().ListByOwner(ctx, "bob")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(memos) != 0 {
		t.Errorf("bob sees %d of alice's memos", len(memos))
	}
}

func TestListByOwnerOrdersByEffectiveTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	const owner = "list-user"
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	recent := base.Add(5 * time.Hour)

	// created long ago, updated recently: should come first
	if _, err := s.Memos().Create(ctx, &model.Memo{
		OwnerID: owner, Title: "bumped", Category: model.CategoryBusiness,
		CreatedAt: base.Add(-96 * time.Hour), UpdatedAt: &recent,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Memos().Create(ctx, &model.Memo{
		OwnerID: owner, Title: "plain", Category: model.CategoryBusiness, CreatedAt: base,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	memos, err := s.Memos().ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(memos) != 2 || memos[0].Title != "bumped" || memos[1].Title != "plain" {
		t.Errorf("order = %v", []string{memos[0].Title, memos[1].Title})
	}
}
