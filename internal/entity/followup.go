package entity

import "time"

// FollowUp é um lembrete agendado para um lead. Depois de criado,
// só o campo Completed muda (Done/Undo na tela de follow-ups).
type FollowUp struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	ReminderAt  time.Time `json:"reminder_at"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
