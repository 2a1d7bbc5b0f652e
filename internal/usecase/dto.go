package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Source  string `json:"lead_source,omitempty"`
	Stage   string `json:"status,omitempty"`
}

// EditLeadInput: patch parcial vindo do formulário de edição.
// Ponteiro nil = campo não tocado.
type EditLeadInput struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Source  *string `json:"lead_source,omitempty"`
	Stage   *string `json:"status,omitempty"`
}

type AddNoteInput struct {
	LeadID string `json:"lead_id"`
	Body   string `json:"note"`
}

type CreateFollowUpInput struct {
	LeadID      string `json:"lead_id"`
	Description string `json:"description"`
	ReminderAt  string `json:"reminder_at"` // RFC3339
}

// Urgency do follow-up pendente, derivada só do instante e do "now".
type Urgency string

const (
	UrgencyNone     Urgency = ""
	UrgencyOverdue  Urgency = "overdue"
	UrgencyToday    Urgency = "today"
	UrgencyTomorrow Urgency = "tomorrow"
)

// PendingFollowUp é o follow-up anotado com a urgência, como a tela
// de follow-ups exibe.
type PendingFollowUp struct {
	entity.FollowUp
	Urgency Urgency `json:"urgency,omitempty"`
}
