package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
)

// Contratos dos repositórios remotos, na granularidade que o engine
// usa. As implementações reais ficam em infra/remote; os testes usam
// mocks do testify.

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]entity.Lead, error)
	Insert(ctx context.Context, fields remote.CreateLeadFields) (*entity.Lead, error)
	Update(ctx context.Context, id string, patch remote.LeadPatch) (*entity.Lead, error)
	Remove(ctx context.Context, id string) error
}

type NoteRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID string) ([]entity.Note, error)
	Insert(ctx context.Context, fields remote.CreateNoteFields) (*entity.Note, error)
}

type FollowUpRepositoryInterface interface {
	List(ctx context.Context, leadID string) ([]entity.FollowUp, error)
	Insert(ctx context.Context, fields remote.CreateFollowUpFields) (*entity.FollowUp, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*entity.FollowUp, error)
}
