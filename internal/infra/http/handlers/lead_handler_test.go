package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/cache"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// Sobe o front contra um data service fake e devolve o router pronto.
func newTestRouter(t *testing.T, dataService http.HandlerFunc) *chi.Mux {
	t.Helper()

	srv := httptest.NewServer(dataService)
	t.Cleanup(srv.Close)

	client := remote.NewClient(srv.URL, "")
	engine := usecase.NewPipelineEngine(
		remote.NewLeadRepository(client),
		remote.NewNoteRepository(client),
		remote.NewFollowUpRepository(client),
		cache.NewQueryCache(),
	)

	leadHandler := handlers.NewLeadHandler(engine)
	pipelineHandler := handlers.NewPipelineHandler(engine)

	r := chi.NewRouter()
	r.Use(middleware.Principal)
	r.Get("/leads", leadHandler.HandleList)
	r.Post("/leads", leadHandler.HandleCreate)
	r.Patch("/leads/{id}/stage", leadHandler.HandleSetStage)
	r.Delete("/leads/{id}", leadHandler.HandleDelete)
	r.Get("/pipeline", pipelineHandler.HandleBoard)
	return r
}

func leadsFixture() []entity.Lead {
	return []entity.Lead{
		{ID: "lead-1", Name: "Maria", Company: "Acme Corp", Stage: entity.StageContacted},
		{ID: "lead-2", Name: "José", Company: "Globex", Stage: entity.StageNew},
	}
}

func TestHandleListWithSearch(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leadsFixture())
	})

	req := httptest.NewRequest(http.MethodGet, "/leads?search=acme", nil)
	req.Header.Set("X-Principal-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var leads []entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Corp", leads[0].Company)
}

func TestHandleListWithoutPrincipalIsEmpty(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chegar no data service sem principal")
	})

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleCreateWithoutPrincipal(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("mutação sem principal não pode chegar na rede")
	})

	body := strings.NewReader(`{"name":"Ana"}`)
	req := httptest.NewRequest(http.MethodPost, "/leads", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var ack map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, false, ack["success"])
	assert.Equal(t, "authentication required", ack["message"])
}

func TestHandleSetStageRejectsUnknownStage(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leadsFixture())
	})

	body := strings.NewReader(`{"status":"recycled"}`)
	req := httptest.NewRequest(http.MethodPatch, "/leads/lead-1/stage", body)
	req.Header.Set("X-Principal-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid stage")
}

func TestHandleSetStageSuccess(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			json.NewEncoder(w).Encode(entity.Lead{ID: "lead-1", Name: "Maria", Stage: entity.StageConverted})
			return
		}
		json.NewEncoder(w).Encode(leadsFixture())
	})

	body := strings.NewReader(`{"status":"converted"}`)
	req := httptest.NewRequest(http.MethodPatch, "/leads/lead-1/stage", body)
	req.Header.Set("X-Principal-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var ack struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    entity.Lead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack.Success)
	assert.Equal(t, entity.StageConverted, ack.Data.Stage)
}

func TestHandleSetStageRemoteFailure(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "service unavailable"})
			return
		}
		json.NewEncoder(w).Encode(leadsFixture())
	})

	body := strings.NewReader(`{"status":"converted"}`)
	req := httptest.NewRequest(http.MethodPatch, "/leads/lead-1/stage", body)
	req.Header.Set("X-Principal-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Mensagem do erro remoto chega intacta no ack de falha.
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "service unavailable")

	// E o board continua mostrando o lead no stage antigo (sem commit
	// parcial: o cache não foi invalidado pela falha).
	req = httptest.NewRequest(http.MethodGet, "/pipeline", nil)
	req.Header.Set("X-Principal-Id", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var columns []struct {
		Stage entity.Stage  `json:"stage"`
		Leads []entity.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	require.Len(t, columns, 4)
	assert.Equal(t, entity.StageContacted, columns[1].Stage)
	require.Len(t, columns[1].Leads, 1)
	assert.Equal(t, "lead-1", columns[1].Leads[0].ID)
	assert.Empty(t, columns[2].Leads) // nada em converted
}

func TestHandleBoardColumns(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leadsFixture())
	})

	req := httptest.NewRequest(http.MethodGet, "/pipeline", nil)
	req.Header.Set("X-Principal-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var columns []struct {
		Stage entity.Stage  `json:"stage"`
		Count int           `json:"count"`
		Leads []entity.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &columns))
	require.Len(t, columns, 4)
	assert.Equal(t, entity.StageNew, columns[0].Stage)
	assert.Equal(t, 1, columns[0].Count)
	assert.Equal(t, entity.StageContacted, columns[1].Stage)
	assert.Equal(t, "Maria", columns[1].Leads[0].Name)
	assert.Equal(t, 0, columns[2].Count)
	assert.Equal(t, 0, columns[3].Count)
}
