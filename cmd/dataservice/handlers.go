package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
)

type EntityHandler struct {
	Leads     *database.LeadStore
	Notes     *database.NoteStore
	FollowUps *database.FollowUpStore
}

type wireError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeWireError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, wireError{Error: msg, Code: code})
}

// principal exige o X-Principal-Id; sem ele nada é visível.
func principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := r.Header.Get("X-Principal-Id")
	if p == "" {
		writeWireError(w, http.StatusUnauthorized, "auth_required", "missing principal")
		return "", false
	}
	return p, true
}

func (h *EntityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "kind")
	leadID := r.URL.Query().Get("lead_id")

	var (
		result any
		err    error
	)
	switch kind {
	case remote.KindLeads:
		result, err = h.Leads.List(r.Context(), p)
	case remote.KindNotes:
		result, err = h.Notes.ListByLead(r.Context(), p, leadID)
	case remote.KindFollowUps:
		result, err = h.FollowUps.List(r.Context(), p, leadID)
	default:
		writeWireError(w, http.StatusNotFound, "not_found", "unknown entity kind: "+kind)
		return
	}
	if err != nil {
		writeWireError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EntityHandler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "kind")

	var (
		result any
		err    error
	)
	switch kind {
	case remote.KindLeads:
		var fields remote.CreateLeadFields
		if !decode(w, r, &fields) {
			return
		}
		if fields.Name == "" {
			writeWireError(w, http.StatusBadRequest, "validation", "name is required")
			return
		}
		result, err = h.Leads.Insert(r.Context(), p, fields)
	case remote.KindNotes:
		var fields remote.CreateNoteFields
		if !decode(w, r, &fields) {
			return
		}
		result, err = h.Notes.Insert(r.Context(), p, fields)
	case remote.KindFollowUps:
		var fields remote.CreateFollowUpFields
		if !decode(w, r, &fields) {
			return
		}
		result, err = h.FollowUps.Insert(r.Context(), p, fields)
	default:
		writeWireError(w, http.StatusNotFound, "not_found", "unknown entity kind: "+kind)
		return
	}
	if err != nil {
		writeWireError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *EntityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	var (
		result any
		err    error
	)
	switch kind {
	case remote.KindLeads:
		var patch remote.LeadPatch
		if !decode(w, r, &patch) {
			return
		}
		result, err = h.Leads.Update(r.Context(), p, id, patch)
	case remote.KindFollowUps:
		var patch remote.FollowUpPatch
		if !decode(w, r, &patch) {
			return
		}
		result, err = h.FollowUps.Update(r.Context(), p, id, patch)
	case remote.KindNotes:
		// Nota é imutável.
		writeWireError(w, http.StatusBadRequest, "validation", "notes cannot be updated")
		return
	default:
		writeWireError(w, http.StatusNotFound, "not_found", "unknown entity kind: "+kind)
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		writeWireError(w, http.StatusNotFound, "not_found", "no matching record")
		return
	}
	if err != nil {
		writeWireError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EntityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	if kind != remote.KindLeads {
		// Notas e follow-ups só somem via cascade do lead.
		writeWireError(w, http.StatusBadRequest, "validation", "only leads can be deleted directly")
		return
	}

	removed, err := h.Leads.Remove(r.Context(), p, id)
	if err != nil {
		writeWireError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if !removed {
		writeWireError(w, http.StatusNotFound, "not_found", "no matching record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeWireError(w, http.StatusBadRequest, "validation", "invalid JSON")
		return false
	}
	return true
}
