package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type PipelineHandler struct {
	Engine *usecase.PipelineEngine
}

func NewPipelineHandler(engine *usecase.PipelineEngine) *PipelineHandler {
	return &PipelineHandler{Engine: engine}
}

type boardColumn struct {
	Stage entity.Stage  `json:"stage"`
	Count int           `json:"count"`
	Leads []entity.Lead `json:"leads"`
}

// HandleBoard: GET /pipeline — as quatro colunas do kanban, na ordem
// do funil, cada lead na sua coluna e só nela.
func (h *PipelineHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Engine.Leads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	grouped := usecase.GroupByStage(leads)

	columns := make([]boardColumn, 0, len(entity.Stages))
	for _, stage := range entity.Stages {
		columns = append(columns, boardColumn{
			Stage: stage,
			Count: len(grouped[stage]),
			Leads: grouped[stage],
		})
	}

	writeJSON(w, http.StatusOK, columns)
}
