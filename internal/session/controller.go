// Package session owns the in-memory working set of the signed-in user's
// memos, their edit state, and the derived filtered projection.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/memoflow/memoflow/internal/exporter"
	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/services"
	"github.com/memoflow/memoflow/internal/summarizer"
)

// Controller mediates every memo action for one interactive session and
// reconciles gateway results into its own state. All state is guarded by a
// single mutex; operations are interleaved, never parallel, per session.
type Controller struct {
	svc *services.MemoService
	// sum is nil when no credential was configured at startup; summarization
	// then stays disabled for the whole session.
	sum summarizer.Summarizer
	exp *exporter.PDFExporter
	log zerolog.Logger
	now func() time.Time

	mu        sync.Mutex
	identity  *model.Identity
	memos     []*model.Memo
	draft     model.Draft
	edit      *model.EditSession
	filter    model.FilterState
	summaries map[string]string
	expanded  map[string]bool
	reloadGen uint64
}

// NewController creates a controller with an empty working set and no
// identity.
func NewController(svc *services.MemoService, sum summarizer.Summarizer, exp *exporter.PDFExporter, log zerolog.Logger) *Controller {
	return &Controller{
		svc:       svc,
		sum:       sum,
		exp:       exp,
		log:       log,
		now:       time.Now,
		draft:     model.NewDraft(),
		filter:    model.NewFilterState(),
		summaries: make(map[string]string),
		expanded:  make(map[string]bool),
	}
}

// OnIdentityChanged replaces the current identity and reloads the working
// set; the set is emptied when ident is nil. Draft and any open edit
// session are left untouched. Suitable as an identity.Broker subscriber.
func (c *Controller) OnIdentityChanged(ctx context.Context, ident *model.Identity) {
	c.mu.Lock()
	c.identity = ident
	c.memos = nil
	c.mu.Unlock()

	if err := c.Reload(ctx); err != nil {
		c.log.Error().Stack().Err(err).Msg("reload after identity change failed")
	}
}

// Identity returns the current identity, nil when signed out.
func (c *Controller) Identity() *model.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Reload fetches the owner's memos sorted by effective timestamp
// descending. Without an identity it is a no-op keeping the empty set.
// Each reload takes a generation; a fetch that finishes after a newer one
// was issued is discarded, so the last issued reload wins.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	if c.identity == nil {
		c.memos = nil
		c.mu.Unlock()
		return nil
	}
	ownerID := c.identity.ID
	c.reloadGen++
	gen := c.reloadGen
	c.mu.Unlock()

	memos, err := c.svc.ListMemos(ctx, ownerID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.reloadGen || c.identity == nil || c.identity.ID != ownerID {
		// A newer reload or identity change superseded this fetch.
		return nil
	}
	c.memos = memos
	return nil
}

// Draft returns the current input buffer.
func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the input buffer.
func (c *Controller) SetDraft(d model.Draft) {
	c.mu.Lock()
	c.draft = d
	c.mu.Unlock()
}

// Save persists the draft as a new memo with CreatedAt = UpdatedAt = now,
// resets the draft, and reloads. It is a no-op without an identity or when
// title and body are both blank after trimming.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.identity == nil {
		c.mu.Unlock()
		return nil
	}
	d := c.draft
	if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Body) == "" {
		c.mu.Unlock()
		return nil
	}
	ownerID := c.identity.ID
	c.mu.Unlock()

	now := c.now()
	_, err := c.svc.CreateMemo(ctx, &model.Memo{
		OwnerID:   ownerID,
		Title:     d.Title,
		Body:      d.Body,
		Category:  d.Category,
		CreatedAt: now,
		UpdatedAt: &now,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.draft = model.NewDraft()
	c.mu.Unlock()
	return c.Reload(ctx)
}

// BeginEdit opens an edit session seeded from the working-set memo with the
// given id, silently replacing any session already open.
func (c *Controller) BeginEdit(memoID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.findLocked(memoID)
	if m == nil {
		return model.ErrNotFound
	}
	c.edit = &model.EditSession{
		MemoID:   m.ID,
		Title:    m.Title,
		Body:     m.Body,
		Category: m.Category,
	}
	return nil
}

// Edit returns a copy of the open edit session, nil when none is open.
func (c *Controller) Edit() *model.EditSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit == nil {
		return nil
	}
	out := *c.edit
	return &out
}

// SetEditFields updates the scratch copy of the open edit session.
func (c *Controller) SetEditFields(title, body string, category model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit == nil {
		return
	}
	c.edit.Title = title
	c.edit.Body = body
	c.edit.Category = category
}

// CommitEdit persists the scratch fields with UpdatedAt = now, closes the
// session, and reloads. CreatedAt is never touched. A cached summary is
// invalidated when the body changed.
func (c *Controller) CommitEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.identity == nil || c.edit == nil {
		c.mu.Unlock()
		return nil
	}
	edit := *c.edit
	ownerID := c.identity.ID
	prev := c.findLocked(edit.MemoID)
	bodyChanged := prev == nil || prev.Body != edit.Body
	c.mu.Unlock()

	_, err := c.svc.UpdateMemo(ctx, ownerID, edit.MemoID, model.MemoUpdate{
		Title:     edit.Title,
		Body:      edit.Body,
		Category:  edit.Category,
		UpdatedAt: c.now(),
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.edit = nil
	if bodyChanged {
		delete(c.summaries, edit.MemoID)
	}
	c.mu.Unlock()
	return c.Reload(ctx)
}

// CancelEdit discards the open edit session without persisting.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.edit = nil
	c.mu.Unlock()
}

// Delete removes the memo permanently and reloads. No confirmation, no
// soft-delete.
func (c *Controller) Delete(ctx context.Context, memoID string) error {
	c.mu.Lock()
	if c.identity == nil {
		c.mu.Unlock()
		return nil
	}
	ownerID := c.identity.ID
	c.mu.Unlock()

	if err := c.svc.DeleteMemo(ctx, ownerID, memoID); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Export renders the working-set memo with the given id into a PDF and
// returns the bytes with a filename derived from the title.
func (c *Controller) Export(memoID string) ([]byte, string, error) {
	c.mu.Lock()
	m := c.findLocked(memoID)
	c.mu.Unlock()
	if m == nil {
		return nil, "", model.ErrNotFound
	}
	data, err := c.exp.Render(m)
	if err != nil {
		return nil, "", err
	}
	return data, c.exp.Filename(m), nil
}

// Summarize asks the summarization gateway for a summary of the memo body
// and caches the result keyed by memo id. The cache entry is always
// overwritten with whatever the gateway returned, including the failure
// placeholder. Without a configured credential it returns
// model.ErrSummarizerNotConfigured, touching neither cache nor network.
func (c *Controller) Summarize(ctx context.Context, memoID, body string) error {
	if c.sum == nil {
		return model.ErrSummarizerNotConfigured
	}
	out := c.sum.Summarize(ctx, body)
	c.mu.Lock()
	c.summaries[memoID] = out
	c.mu.Unlock()
	return nil
}

// Summary returns the cached summary for the id, if any.
func (c *Controller) Summary(memoID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.summaries[memoID]
	return s, ok
}

// ToggleSummaryVisibility flips the expanded flag for the id. A cached
// summary is not required.
func (c *Controller) ToggleSummaryVisibility(memoID string) {
	c.mu.Lock()
	c.expanded[memoID] = !c.expanded[memoID]
	c.mu.Unlock()
}

// SummaryVisible reports whether the summary panel for the id is expanded.
func (c *Controller) SummaryVisible(memoID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[memoID]
}

// Filter returns the current filter state.
func (c *Controller) Filter() model.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter replaces the filter state. An open edit session keeps its memo
// id and is unaffected.
func (c *Controller) SetFilter(f model.FilterState) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// Visible returns the filtered projection of the working set, evaluated
// against the current time.
func (c *Controller) Visible() []*model.Memo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.memos, c.filter, c.now())
}

// WorkingSet returns the raw fetched working set in fetch order.
func (c *Controller) WorkingSet() []*model.Memo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.Memo, len(c.memos))
	copy(out, c.memos)
	return out
}

func (c *Controller) findLocked(memoID string) *model.Memo {
	for _, m := range c.memos {
		if m.ID == memoID {
			return m
		}
	}
	return nil
}
