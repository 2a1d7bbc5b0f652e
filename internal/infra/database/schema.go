package database

import "database/sql"

// EnsureSchema cria as tabelas do stand-in de desenvolvimento. Em
// produção o dono do schema é o data service de verdade.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			company TEXT,
			lead_source TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lead_notes (
			id UUID PRIMARY KEY,
			lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			note TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS follow_ups (
			id UUID PRIMARY KEY,
			lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			description TEXT NOT NULL,
			reminder_at TIMESTAMPTZ NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_user ON leads (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_follow_ups_reminder ON follow_ups (user_id, reminder_at ASC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
