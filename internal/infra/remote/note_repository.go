package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type NoteRepository struct {
	Client *Client
}

func NewNoteRepository(client *Client) *NoteRepository {
	return &NoteRepository{Client: client}
}

// ListByLead: notas de um lead, mais recente primeiro.
func (r *NoteRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Note, error) {
	filter := url.Values{"lead_id": {leadID}}

	raw, err := r.Client.ListEntities(ctx, KindNotes, filter)
	if err != nil {
		return nil, err
	}

	var notes []entity.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode notes: %v", err)}
	}
	return notes, nil
}

// Insert cria a nota. Nota não tem update: uma vez escrita, fica.
func (r *NoteRepository) Insert(ctx context.Context, fields CreateNoteFields) (*entity.Note, error) {
	if fields.LeadID == "" {
		return nil, &entity.ValidationError{Message: "lead_id is required"}
	}
	if strings.TrimSpace(fields.Body) == "" {
		return nil, &entity.ValidationError{Message: "note is required"}
	}

	raw, err := r.Client.InsertEntity(ctx, KindNotes, fields)
	if err != nil {
		return nil, err
	}

	var note entity.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode note: %v", err)}
	}
	return &note, nil
}
