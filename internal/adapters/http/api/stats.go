package api

import (
	"context"
	"net/http"

	"github.com/okian/eventrank/internal/domain/types"
)

// StatsProvider reports the operational snapshot served on /stats.
type StatsProvider interface {
	Stats(ctx context.Context) types.ServiceStats
}

// StatsHandler serves GET /stats.
type StatsHandler struct {
	provider StatsProvider
}

func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats writes queue, store and category counts.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Stats(r.Context()))
}
