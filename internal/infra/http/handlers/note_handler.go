package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type NoteHandler struct {
	Engine *usecase.PipelineEngine
}

func NewNoteHandler(engine *usecase.PipelineEngine) *NoteHandler {
	return &NoteHandler{Engine: engine}
}

// HandleList: GET /leads/{id}/notes
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	notes, err := h.Engine.Notes(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

type addNoteRequest struct {
	Body string `json:"note"`
}

// HandleCreate: POST /leads/{id}/notes
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	note, err := h.Engine.AddNote(r.Context(), usecase.AddNoteInput{
		LeadID: leadID,
		Body:   req.Body,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ackResponse{
		Success: true,
		Message: "Note added",
		Data:    note,
	})
}
