package handlers

import (
	"net/http"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/services"
)

type StatsHandler struct {
	stats services.StatsService
}

func NewStatsHandler(stats services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get godoc
// @Summary  Contact totals
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} services.Stats
// @Router   /api/stats [get]
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Stats(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
