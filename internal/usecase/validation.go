package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Validação roda inteira antes de qualquer chamada de rede: input
// inválido nunca chega no data service.

func ValidateCreateLeadInput(input CreateLeadInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &entity.ValidationError{Message: "name is required"}
	}
	if len(input.Name) > 200 {
		return &entity.ValidationError{Message: "name must not exceed 200 characters"}
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return &entity.ValidationError{Message: "email is invalid"}
		}
	}
	if input.Stage != "" && !entity.Stage(input.Stage).Valid() {
		return &entity.ValidationError{Message: fmt.Sprintf("invalid stage %q", input.Stage)}
	}
	return nil
}

func ValidateEditLeadInput(input EditLeadInput) error {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return &entity.ValidationError{Message: "name is required"}
	}
	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return &entity.ValidationError{Message: "email is invalid"}
		}
	}
	if input.Stage != nil && !entity.Stage(*input.Stage).Valid() {
		return &entity.ValidationError{Message: fmt.Sprintf("invalid stage %q", *input.Stage)}
	}
	return nil
}

func ValidateCreateFollowUpInput(input CreateFollowUpInput) error {
	if input.LeadID == "" {
		return &entity.ValidationError{Message: "lead_id is required"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return &entity.ValidationError{Message: "description is required"}
	}
	if _, err := time.Parse(time.RFC3339, input.ReminderAt); err != nil {
		return &entity.ValidationError{Message: "reminder_at must be a valid RFC3339 instant"}
	}
	return nil
}
