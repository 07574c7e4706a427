package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/contactbook/engine/internal/api/types"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler accepts a nil db, in which case readiness always succeeds.
func NewHealthHandler(db Pinger, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{db: db, now: now}
}

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} types.HealthResponse
// @Router   /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "healthy", Timestamp: h.now().UTC()})
}

// Readiness reports whether the database answers within two seconds.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, types.HealthResponse{Status: "unavailable", Timestamp: h.now().UTC()})
			return
		}
	}
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ready", Timestamp: h.now().UTC()})
}
