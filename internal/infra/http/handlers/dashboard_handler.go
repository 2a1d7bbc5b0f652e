package handlers

import (
	"net/http"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type DashboardHandler struct {
	Engine *usecase.PipelineEngine
}

func NewDashboardHandler(engine *usecase.PipelineEngine) *DashboardHandler {
	return &DashboardHandler{Engine: engine}
}

type dashboardResponse struct {
	TotalLeads       int                       `json:"total_leads"`
	StageCounts      map[entity.Stage]int      `json:"stage_counts"`
	ConversionRate   int                       `json:"conversion_rate"`
	RecentLeads      []entity.Lead             `json:"recent_leads"`
	PendingFollowUps []usecase.PendingFollowUp `json:"pending_follow_ups"`
}

// HandleDashboard: GET /dashboard — tudo derivado dos dois snapshots
// cacheados (leads + follow-ups), zero query extra.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Engine.Leads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	followUps, err := h.Engine.FollowUps(r.Context(), "")
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalLeads:       len(leads),
		StageCounts:      usecase.StageCounts(leads),
		ConversionRate:   usecase.ConversionRate(leads),
		RecentLeads:      usecase.RecentLeads(leads, 5),
		PendingFollowUps: usecase.PendingFollowUpsPreview(followUps, time.Now(), 5),
	})
}
