package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	respond "github.com/memoflow/memoflow/internal/api/respond"
	"github.com/memoflow/memoflow/internal/exporter"
	"github.com/memoflow/memoflow/internal/model"
	"github.com/memoflow/memoflow/internal/services"
	"github.com/memoflow/memoflow/internal/session"
	"github.com/memoflow/memoflow/internal/summarizer"
)

// MemoHandler serves the memo CRUD, filter, summarize, and export endpoints.
type MemoHandler struct {
	svc *services.MemoService
	sum summarizer.Summarizer
	exp *exporter.PDFExporter
	log zerolog.Logger
	now func() time.Time
}

func NewMemoHandler(svc *services.MemoService, sum summarizer.Summarizer, exp *exporter.PDFExporter, log zerolog.Logger) *MemoHandler {
	return &MemoHandler{svc: svc, sum: sum, exp: exp, log: log, now: time.Now}
}

// CreateMemo POST /api/memos
func (h *MemoHandler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Category == "" {
		req.Category = string(model.CategoryBusiness)
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	// Blank drafts are silently dropped, matching the save contract.
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Body) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	now := h.now()
	out, err := h.svc.CreateMemo(r.Context(), &model.Memo{
		OwnerID:   ident.ID,
		Title:     req.Title,
		Body:      req.Body,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: &now,
	})
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListMemos GET /api/memos?keyword=&category=&period=
func (h *MemoHandler) ListMemos(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	q := r.URL.Query()
	filterCategory, err := model.ParseFilterCategory(q.Get("category"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	period, err := model.ParsePeriod(q.Get("period"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	memos, err := h.svc.ListMemos(r.Context(), ident.ID)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	out := session.Apply(memos, model.FilterState{
		Keyword:  q.Get("keyword"),
		Category: filterCategory,
		Period:   period,
	}, h.now())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memos": out, "count": len(out)})
}

// GetMemo GET /api/memos/{memoId}
func (h *MemoHandler) GetMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	out, err := h.svc.GetMemo(r.Context(), ident.ID, mux.Vars(r)["memoId"])
	if err != nil {
		respond.WriteNotFound(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UpdateMemo PATCH /api/memos/{memoId}
func (h *MemoHandler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	category, err := model.ParseCategory(req.Category)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.UpdateMemo(r.Context(), ident.ID, mux.Vars(r)["memoId"], model.MemoUpdate{
		Title:     req.Title,
		Body:      req.Body,
		Category:  category,
		UpdatedAt: h.now(),
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "memo not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteMemo DELETE /api/memos/{memoId}
func (h *MemoHandler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	if err := h.svc.DeleteMemo(r.Context(), ident.ID, mux.Vars(r)["memoId"]); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "memo not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SummarizeMemo POST /api/memos/{memoId}/summary
func (h *MemoHandler) SummarizeMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	if h.sum == nil {
		h.log.Warn().Err(model.ErrSummarizerNotConfigured).Msg("summary requested")
		respond.WriteError(w, http.StatusServiceUnavailable, "summarization unavailable")
		return
	}
	m, err := h.svc.GetMemo(r.Context(), ident.ID, mux.Vars(r)["memoId"])
	if err != nil {
		respond.WriteNotFound(w, err.Error())
		return
	}
	summary := h.sum.Summarize(r.Context(), m.Body)
	respond.WriteJSON(w, http.StatusOK, map[string]string{"memoId": m.ID, "summary": summary})
}

// ExportMemo GET /api/memos/{memoId}/export
func (h *MemoHandler) ExportMemo(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFrom(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "no identity")
		return
	}
	m, err := h.svc.GetMemo(r.Context(), ident.ID, mux.Vars(r)["memoId"])
	if err != nil {
		respond.WriteNotFound(w, err.Error())
		return
	}
	data, err := h.exp.Render(m)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exp.Filename(m)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
