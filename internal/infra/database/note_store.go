package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
)

type NoteStore struct {
	DB *sql.DB
}

func (s *NoteStore) ListByLead(ctx context.Context, principal, leadID string) ([]entity.Note, error) {
	query := `
		SELECT id, lead_id, user_id, note, created_at
		FROM lead_notes
		WHERE user_id = $1 AND lead_id = $2
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, principal, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []entity.Note{}
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.LeadID, &n.UserID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Insert(ctx context.Context, principal string, fields remote.CreateNoteFields) (*entity.Note, error) {
	query := `
		INSERT INTO lead_notes (id, lead_id, user_id, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, user_id, note, created_at`

	var n entity.Note
	err := s.DB.QueryRowContext(
		ctx, query, uuid.NewString(), fields.LeadID, principal, fields.Body,
	).Scan(&n.ID, &n.LeadID, &n.UserID, &n.Body, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
