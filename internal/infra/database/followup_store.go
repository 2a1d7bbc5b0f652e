package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
)

type FollowUpStore struct {
	DB *sql.DB
}

const followUpColumns = `id, lead_id, user_id, description, reminder_at, completed, created_at`

func scanFollowUp(row interface{ Scan(...any) error }) (*entity.FollowUp, error) {
	var f entity.FollowUp
	err := row.Scan(&f.ID, &f.LeadID, &f.UserID, &f.Description, &f.ReminderAt, &f.Completed, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List: leadID vazio traz todos do principal. Sempre reminder_at asc.
func (s *FollowUpStore) List(ctx context.Context, principal, leadID string) ([]entity.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE user_id = $1`
	args := []any{principal}
	if leadID != "" {
		query += ` AND lead_id = $2`
		args = append(args, leadID)
	}
	query += ` ORDER BY reminder_at ASC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := []entity.FollowUp{}
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, *f)
	}
	return followUps, rows.Err()
}

func (s *FollowUpStore) Insert(ctx context.Context, principal string, fields remote.CreateFollowUpFields) (*entity.FollowUp, error) {
	reminderAt, err := time.Parse(time.RFC3339, fields.ReminderAt)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO follow_ups (id, lead_id, user_id, description, reminder_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + followUpColumns

	row := s.DB.QueryRowContext(
		ctx, query, uuid.NewString(), fields.LeadID, principal, fields.Description, reminderAt,
	)
	return scanFollowUp(row)
}

func (s *FollowUpStore) Update(ctx context.Context, principal, id string, patch remote.FollowUpPatch) (*entity.FollowUp, error) {
	query := `
		UPDATE follow_ups SET
			completed = COALESCE($3, completed)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + followUpColumns

	row := s.DB.QueryRowContext(ctx, query, id, principal, patch.Completed)
	return scanFollowUp(row)
}
