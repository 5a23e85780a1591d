package api

import (
	"net/http"
	"time"

	respond "github.com/memoflow/memoflow/internal/api/respond"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	isHealthy func() bool
}

// NewHealthHandler creates a health handler bound to the service health function.
func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
