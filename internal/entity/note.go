package entity

import "time"

// Note é imutável depois de criada: não existe update, só insert e o
// cascade delete quando o lead dono some.
type Note struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
