package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type FollowUpRepository struct {
	Client *Client
}

func NewFollowUpRepository(client *Client) *FollowUpRepository {
	return &FollowUpRepository{Client: client}
}

// List: leadID vazio traz todos os follow-ups do principal; preenchido,
// só os daquele lead. Sempre reminder_at asc.
func (r *FollowUpRepository) List(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	var filter url.Values
	if leadID != "" {
		filter = url.Values{"lead_id": {leadID}}
	}

	raw, err := r.Client.ListEntities(ctx, KindFollowUps, filter)
	if err != nil {
		return nil, err
	}

	var followUps []entity.FollowUp
	if err := json.Unmarshal(raw, &followUps); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode follow_ups: %v", err)}
	}
	return followUps, nil
}

func (r *FollowUpRepository) Insert(ctx context.Context, fields CreateFollowUpFields) (*entity.FollowUp, error) {
	if fields.LeadID == "" {
		return nil, &entity.ValidationError{Message: "lead_id is required"}
	}
	if strings.TrimSpace(fields.Description) == "" {
		return nil, &entity.ValidationError{Message: "description is required"}
	}
	if _, err := time.Parse(time.RFC3339, fields.ReminderAt); err != nil {
		return nil, &entity.ValidationError{Message: "reminder_at must be a valid RFC3339 instant"}
	}

	raw, err := r.Client.InsertEntity(ctx, KindFollowUps, fields)
	if err != nil {
		return nil, err
	}

	var followUp entity.FollowUp
	if err := json.Unmarshal(raw, &followUp); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode follow_up: %v", err)}
	}
	return &followUp, nil
}

// SetCompleted: completed é o único campo mutável de um follow-up.
func (r *FollowUpRepository) SetCompleted(ctx context.Context, id string, completed bool) (*entity.FollowUp, error) {
	patch := FollowUpPatch{Completed: &completed}

	raw, err := r.Client.UpdateEntity(ctx, KindFollowUps, id, patch)
	if err != nil {
		return nil, err
	}

	var followUp entity.FollowUp
	if err := json.Unmarshal(raw, &followUp); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode follow_up: %v", err)}
	}
	return &followUp, nil
}
