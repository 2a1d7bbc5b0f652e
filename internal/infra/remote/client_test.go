package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
	"github.com/xavierca1/ligue-crm/internal/session"
)

func authedCtx() context.Context {
	return session.WithPrincipal(context.Background(), "user-1")
}

func TestListLeadsSendsPrincipalHeader(t *testing.T) {
	var gotPrincipal string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = r.Header.Get("X-Principal-Id")
		assert.Equal(t, "/entities/leads", r.URL.Path)
		json.NewEncoder(w).Encode([]entity.Lead{
			{ID: "lead-1", Name: "Maria", Stage: entity.StageNew, CreatedAt: time.Now()},
		})
	}))
	defer srv.Close()

	repo := remote.NewLeadRepository(remote.NewClient(srv.URL, ""))
	leads, err := repo.List(authedCtx())

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Maria", leads[0].Name)
	assert.Equal(t, "user-1", gotPrincipal)
}

func TestErrorNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/entities/leads/missing":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no matching record", "code": "not_found"})
		case "/entities/leads/boom":
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "database exploded"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "missing principal"})
		}
	}))
	defer srv.Close()

	repo := remote.NewLeadRepository(remote.NewClient(srv.URL, ""))

	name := "x"
	_, err := repo.Update(authedCtx(), "missing", remote.LeadPatch{Name: &name})
	assert.True(t, entity.IsNotFoundError(err))
	assert.Equal(t, "no matching record", err.Error())

	// Mensagem do serviço passa adiante sem retoque.
	_, err = repo.Update(authedCtx(), "boom", remote.LeadPatch{Name: &name})
	assert.True(t, entity.IsRemoteError(err))
	assert.Equal(t, "database exploded", err.Error())

	_, err = repo.List(context.Background())
	assert.True(t, entity.IsAuthRequiredError(err))
}

func TestTransportFailureIsRemoteError(t *testing.T) {
	repo := remote.NewLeadRepository(remote.NewClient("http://127.0.0.1:1", ""))

	_, err := repo.List(authedCtx())
	assert.True(t, entity.IsRemoteError(err))
}

func TestInsertLeadValidatesBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	repo := remote.NewLeadRepository(remote.NewClient(srv.URL, ""))

	_, err := repo.Insert(authedCtx(), remote.CreateLeadFields{Name: "  "})
	assert.True(t, entity.IsValidationError(err))

	_, err = repo.Insert(authedCtx(), remote.CreateLeadFields{Name: "Ana", Stage: "recycled"})
	assert.True(t, entity.IsValidationError(err))

	assert.False(t, called)
}

func TestInsertLeadDefaultsStage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var fields remote.CreateLeadFields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "new", fields.Stage)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entity.Lead{ID: "lead-1", Name: fields.Name, Stage: entity.StageNew})
	}))
	defer srv.Close()

	repo := remote.NewLeadRepository(remote.NewClient(srv.URL, ""))

	lead, err := repo.Insert(authedCtx(), remote.CreateLeadFields{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.StageNew, lead.Stage)
}

func TestFollowUpListFilterAndOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entities/follow_ups", r.URL.Path)
		assert.Equal(t, "lead-1", r.URL.Query().Get("lead_id"))
		json.NewEncoder(w).Encode([]entity.FollowUp{
			{ID: "f1", LeadID: "lead-1", ReminderAt: time.Now()},
		})
	}))
	defer srv.Close()

	repo := remote.NewFollowUpRepository(remote.NewClient(srv.URL, ""))

	followUps, err := repo.List(authedCtx(), "lead-1")
	require.NoError(t, err)
	assert.Len(t, followUps, 1)
}

func TestFollowUpSetCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/entities/follow_ups/f1", r.URL.Path)

		var patch remote.FollowUpPatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		require.NotNil(t, patch.Completed)
		assert.True(t, *patch.Completed)

		json.NewEncoder(w).Encode(entity.FollowUp{ID: "f1", Completed: true})
	}))
	defer srv.Close()

	repo := remote.NewFollowUpRepository(remote.NewClient(srv.URL, ""))

	followUp, err := repo.SetCompleted(authedCtx(), "f1", true)
	require.NoError(t, err)
	assert.True(t, followUp.Completed)
}

func TestDeleteLead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/entities/leads/lead-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := remote.NewLeadRepository(remote.NewClient(srv.URL, ""))
	assert.NoError(t, repo.Remove(authedCtx(), "lead-1"))
}
