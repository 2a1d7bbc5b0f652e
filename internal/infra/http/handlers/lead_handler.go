package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	Engine *usecase.PipelineEngine
}

func NewLeadHandler(engine *usecase.PipelineEngine) *LeadHandler {
	return &LeadHandler{Engine: engine}
}

// HandleList: GET /leads?search= — lista do cache, filtrada em memória.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Engine.Leads(r.Context())
	if err != nil {
		middleware.RecordRemoteError("list_leads")
		writeError(w, err)
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		leads = usecase.SearchLeads(leads, search)
	}

	writeJSON(w, http.StatusOK, leads)
}

// HandleGet: GET /leads/{id} — o painel de detalhe.
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	leads, err := h.Engine.Leads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	for i := range leads {
		if leads[i].ID == leadID {
			writeJSON(w, http.StatusOK, leads[i])
			return
		}
	}
	writeError(w, &entity.NotFoundError{Message: "lead not found"})
}

// HandleCreate: POST /leads
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	lead, err := h.Engine.CreateLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, ackResponse{
		Success: true,
		Message: "Lead created successfully",
		Data:    lead,
	})
}

// HandleUpdate: PUT /leads/{id} — edição de formulário (patch parcial).
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input usecase.EditLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	lead, err := h.Engine.RecordEdit(r.Context(), leadID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Success: true,
		Message: "Lead updated",
		Data:    lead,
	})
}

type setStageRequest struct {
	Stage string `json:"status"`
}

// HandleSetStage: PATCH /leads/{id}/stage — a borda do drag-and-drop.
// O drop chega aqui como id + stage alvo; índice de coluna/posição é
// artefato de apresentação e morre no front.
func (h *LeadHandler) HandleSetStage(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req setStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &entity.ValidationError{Message: "invalid JSON"})
		return
	}

	// Stage anterior, só pra métrica (snapshot cacheado, sem rede).
	var from entity.Stage
	if leads, err := h.Engine.Leads(r.Context()); err == nil {
		for i := range leads {
			if leads[i].ID == leadID {
				from = leads[i].Stage
				break
			}
		}
	}

	lead, err := h.Engine.SetStage(r.Context(), leadID, entity.Stage(req.Stage))
	if err != nil {
		writeError(w, err)
		return
	}

	if from != "" && from != lead.Stage {
		middleware.RecordStageTransition(string(from), string(lead.Stage))
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Success: true,
		Message: "Lead updated",
		Data:    lead,
	})
}

// HandleDelete: DELETE /leads/{id}
func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	if err := h.Engine.DeleteLead(r.Context(), leadID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ackResponse{
		Success: true,
		Message: "Lead deleted",
	})
}
