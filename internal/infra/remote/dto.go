package remote

// Nomes de kind no wire, iguais às tabelas do serviço.
const (
	KindLeads     = "leads"
	KindNotes     = "lead_notes"
	KindFollowUps = "follow_ups"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Campos que o front manda; id, user_id e timestamps são do serviço.

type CreateLeadFields struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Source  string `json:"lead_source,omitempty"`
	Stage   string `json:"status"`
}

// LeadPatch: campo nil = não mexe. Vira um PATCH parcial no wire.
type LeadPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Source  *string `json:"lead_source,omitempty"`
	Stage   *string `json:"status,omitempty"`
}

func (p LeadPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Company == nil && p.Source == nil && p.Stage == nil
}

type CreateNoteFields struct {
	LeadID string `json:"lead_id"`
	Body   string `json:"note"`
}

type CreateFollowUpFields struct {
	LeadID      string `json:"lead_id"`
	Description string `json:"description"`
	ReminderAt  string `json:"reminder_at"` // RFC3339
}

type FollowUpPatch struct {
	Completed *bool `json:"completed,omitempty"`
}
