package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type FollowUpHandler struct {
	Engine *usecase.PipelineEngine
}

func NewFollowUpHandler(engine *usecase.PipelineEngine) *FollowUpHandler {
	return &FollowUpHandler{Engine: engine}
}

type followUpListResponse struct {
	Pending   []usecase.PendingFollowUp `json:"pending"`
	Completed []entity.FollowUp         `json:"completed"`
}

// HandleList: GET /follow-ups?lead_id= — pendentes com urgência
// (overdue/today/tomorrow) e concluídos, como a tela separa.
func (h *FollowUpHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("lead_id")

	followUps, err := h.Engine.FollowUps(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	completed := make([]entity.FollowUp, 0, len(followUps))
	for _, f := range followUps {
		if f.Completed {
			completed = append(completed, f)
		}
	}

	writeJSON(w, http.StatusOK, followUpListResponse{
		Pending:   usecase.UpcomingFollowUps(followUps, time.Now()),
		Completed: completed,
	})
}

// HandleCreate: POST /follow-ups
func (h *FollowUpHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateFollowUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	followUp, err := h.Engine.CreateFollowUp(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ackResponse{
		Success: true,
		Message: "Follow-up created",
		Data:    followUp,
	})
}

type completeFollowUpRequest struct {
	Completed bool `json:"completed"`
}

// HandleSetCompleted: PATCH /follow-ups/{id} — Done/Undo.
func (h *FollowUpHandler) HandleSetCompleted(w http.ResponseWriter, r *http.Request) {
	followUpID := chi.URLParam(r, "id")

	var req completeFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	followUp, err := h.Engine.SetFollowUpCompleted(r.Context(), followUpID, req.Completed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Success: true,
		Message: "Follow-up updated",
		Data:    followUp,
	})
}
