package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
)

// LeadStore é o lado servidor do protocolo de entidades, por trás do
// stand-in de desenvolvimento. Tudo escopado por user_id: um principal
// nunca enxerga registro de outro.
type LeadStore struct {
	DB *sql.DB
}

const leadColumns = `id, user_id, name,
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(company, ''), COALESCE(lead_source, ''),
	status, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.UserID, &l.Name,
		&l.Email, &l.Phone, &l.Company, &l.Source,
		&l.Stage, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LeadStore) List(ctx context.Context, principal string) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, principal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func (s *LeadStore) Insert(ctx context.Context, principal string, fields remote.CreateLeadFields) (*entity.Lead, error) {
	query := `
		INSERT INTO leads (id, user_id, name, email, phone, company, lead_source, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leadColumns

	row := s.DB.QueryRowContext(
		ctx,
		query,
		uuid.NewString(),
		principal,
		fields.Name,
		nullString(fields.Email),
		nullString(fields.Phone),
		nullString(fields.Company),
		nullString(fields.Source),
		fields.Stage,
	)
	return scanLead(row)
}

func (s *LeadStore) Update(ctx context.Context, principal, id string, patch remote.LeadPatch) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			name = COALESCE($3, name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			company = COALESCE($6, company),
			lead_source = COALESCE($7, lead_source),
			status = COALESCE($8, status),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + leadColumns

	row := s.DB.QueryRowContext(
		ctx,
		query,
		id, principal,
		patch.Name, patch.Email, patch.Phone, patch.Company, patch.Source, patch.Stage,
	)
	return scanLead(row)
}

// Remove: o ON DELETE CASCADE do schema leva junto notas e follow-ups.
func (s *LeadStore) Remove(ctx context.Context, principal, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM leads WHERE id = $1 AND user_id = $2`, id, principal)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
