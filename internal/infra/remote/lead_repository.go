package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadRepository struct {
	Client *Client
}

func NewLeadRepository(client *Client) *LeadRepository {
	return &LeadRepository{Client: client}
}

// List retorna os leads visíveis pro principal, created_at desc
// (ordem default do serviço pra esse kind).
func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	raw, err := r.Client.ListEntities(ctx, KindLeads, nil)
	if err != nil {
		return nil, err
	}

	var leads []entity.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode leads: %v", err)}
	}
	return leads, nil
}

func (r *LeadRepository) Insert(ctx context.Context, fields CreateLeadFields) (*entity.Lead, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, &entity.ValidationError{Message: "name is required"}
	}
	if fields.Stage == "" {
		fields.Stage = string(entity.StageNew)
	}
	if !entity.Stage(fields.Stage).Valid() {
		return nil, &entity.ValidationError{Message: fmt.Sprintf("invalid stage %q", fields.Stage)}
	}

	raw, err := r.Client.InsertEntity(ctx, KindLeads, fields)
	if err != nil {
		return nil, err
	}

	var lead entity.Lead
	if err := json.Unmarshal(raw, &lead); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode lead: %v", err)}
	}
	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch LeadPatch) (*entity.Lead, error) {
	if patch.Stage != nil && !entity.Stage(*patch.Stage).Valid() {
		return nil, &entity.ValidationError{Message: fmt.Sprintf("invalid stage %q", *patch.Stage)}
	}

	raw, err := r.Client.UpdateEntity(ctx, KindLeads, id, patch)
	if err != nil {
		return nil, err
	}

	var lead entity.Lead
	if err := json.Unmarshal(raw, &lead); err != nil {
		return nil, &entity.RemoteError{Message: fmt.Sprintf("decode lead: %v", err)}
	}
	return &lead, nil
}

func (r *LeadRepository) Remove(ctx context.Context, id string) error {
	return r.Client.DeleteEntity(ctx, KindLeads, id)
}
