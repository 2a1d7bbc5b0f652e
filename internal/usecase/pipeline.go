package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-crm/internal/cache"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/remote"
	"github.com/xavierca1/ligue-crm/internal/session"
)

// PipelineEngine é o dono do estado do funil no front: valida e aplica
// transições de stage (edição direta ou drag-and-drop), escreve via
// repositório e invalida as chaves de cache afetadas. O cache só é
// invalidado depois de um write bem-sucedido: mutação que falha deixa
// o cache exatamente como estava.
type PipelineEngine struct {
	LeadRepo     LeadRepositoryInterface
	NoteRepo     NoteRepositoryInterface
	FollowUpRepo FollowUpRepositoryInterface
	Cache        *cache.QueryCache
}

func NewPipelineEngine(
	leadRepo LeadRepositoryInterface,
	noteRepo NoteRepositoryInterface,
	followUpRepo FollowUpRepositoryInterface,
	queryCache *cache.QueryCache,
) *PipelineEngine {
	return &PipelineEngine{
		LeadRepo:     leadRepo,
		NoteRepo:     noteRepo,
		FollowUpRepo: followUpRepo,
		Cache:        queryCache,
	}
}

func requirePrincipal(ctx context.Context) error {
	if session.PrincipalFrom(ctx) == "" {
		return &entity.AuthRequiredError{Message: "authentication required"}
	}
	return nil
}

// ---- Leituras (sempre via cache, read-through) ----

// Leads: sem principal não tem query nenhuma — lista vazia, sem erro.
func (e *PipelineEngine) Leads(ctx context.Context) ([]entity.Lead, error) {
	if session.PrincipalFrom(ctx) == "" {
		return []entity.Lead{}, nil
	}
	v, err := e.Cache.Fetch(ctx, cache.LeadsKey(), func(ctx context.Context) (any, error) {
		return e.LeadRepo.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	leads, _ := v.([]entity.Lead)
	return leads, nil
}

func (e *PipelineEngine) Notes(ctx context.Context, leadID string) ([]entity.Note, error) {
	if session.PrincipalFrom(ctx) == "" {
		return []entity.Note{}, nil
	}
	v, err := e.Cache.Fetch(ctx, cache.NotesKey(leadID), func(ctx context.Context) (any, error) {
		return e.NoteRepo.ListByLead(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	notes, _ := v.([]entity.Note)
	return notes, nil
}

// FollowUps: leadID vazio = lista geral, senão só a do lead.
func (e *PipelineEngine) FollowUps(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	if session.PrincipalFrom(ctx) == "" {
		return []entity.FollowUp{}, nil
	}
	v, err := e.Cache.Fetch(ctx, cache.FollowUpsKey(leadID), func(ctx context.Context) (any, error) {
		return e.FollowUpRepo.List(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	followUps, _ := v.([]entity.FollowUp)
	return followUps, nil
}

// ---- Mutações de lead ----

func (e *PipelineEngine) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}
	if err := ValidateCreateLeadInput(input); err != nil {
		return nil, err
	}

	stage := input.Stage
	if stage == "" {
		stage = string(entity.StageNew)
	}

	lead, err := e.LeadRepo.Insert(ctx, remote.CreateLeadFields{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Source:  input.Source,
		Stage:   stage,
	})
	if err != nil {
		return nil, err
	}

	e.Cache.InvalidatePrefix("leads")
	return lead, nil
}

// SetStage é o único ponto de entrada de transição de stage, tanto pra
// edição direta quanto pro drop no kanban. O chamador identifica o
// alvo por valor de stage, nunca por índice de coluna/lista.
//
// Stage igual ao atual é no-op: zero writes, zero invalidação (drop de
// volta na coluna de origem não gera request). Dois SetStage em voo
// pro mesmo lead não são serializados: o último write a completar
// define o estado, e cada conclusão invalida o cache de novo.
func (e *PipelineEngine) SetStage(ctx context.Context, leadID string, newStage entity.Stage) (*entity.Lead, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}
	if !newStage.Valid() {
		return nil, &entity.ValidationError{Message: fmt.Sprintf("invalid stage %q", newStage)}
	}

	current, err := e.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if current.Stage == newStage {
		return current, nil
	}

	stage := string(newStage)
	lead, err := e.LeadRepo.Update(ctx, leadID, remote.LeadPatch{Stage: &stage})
	if err != nil {
		return nil, err
	}

	log.Printf("🔀 Lead %s: %s -> %s", leadID, current.Stage, newStage)
	e.Cache.InvalidatePrefix("leads")
	return lead, nil
}

// RecordEdit aplica um patch parcial de formulário. Mudança de stage
// por aqui segue a mesma regra do SetStage: igual ao atual, não
// escreve stage. Patch que fica vazio vira no-op completo.
func (e *PipelineEngine) RecordEdit(ctx context.Context, leadID string, input EditLeadInput) (*entity.Lead, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}
	if err := ValidateEditLeadInput(input); err != nil {
		return nil, err
	}

	current, err := e.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	patch := remote.LeadPatch{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Source:  input.Source,
		Stage:   input.Stage,
	}
	if patch.Stage != nil && entity.Stage(*patch.Stage) == current.Stage {
		patch.Stage = nil
	}
	if patch.Empty() {
		return current, nil
	}

	lead, err := e.LeadRepo.Update(ctx, leadID, patch)
	if err != nil {
		return nil, err
	}

	e.Cache.InvalidatePrefix("leads")
	return lead, nil
}

// DeleteLead remove o lead; notas e follow-ups caem em cascata no
// servidor, então as chaves relacionadas também são invalidadas.
func (e *PipelineEngine) DeleteLead(ctx context.Context, leadID string) error {
	if err := requirePrincipal(ctx); err != nil {
		return err
	}

	if err := e.LeadRepo.Remove(ctx, leadID); err != nil {
		return err
	}

	e.Cache.InvalidatePrefix("leads")
	e.Cache.InvalidatePrefix("lead_notes")
	e.Cache.InvalidatePrefix("follow_ups")
	return nil
}

// ---- Notas e follow-ups ----

func (e *PipelineEngine) AddNote(ctx context.Context, input AddNoteInput) (*entity.Note, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}

	note, err := e.NoteRepo.Insert(ctx, remote.CreateNoteFields{
		LeadID: input.LeadID,
		Body:   input.Body,
	})
	if err != nil {
		return nil, err
	}

	e.Cache.Invalidate(func(k cache.Key) bool {
		return k == cache.NotesKey(input.LeadID)
	})
	return note, nil
}

func (e *PipelineEngine) CreateFollowUp(ctx context.Context, input CreateFollowUpInput) (*entity.FollowUp, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}
	if err := ValidateCreateFollowUpInput(input); err != nil {
		return nil, err
	}

	followUp, err := e.FollowUpRepo.Insert(ctx, remote.CreateFollowUpFields{
		LeadID:      input.LeadID,
		Description: input.Description,
		ReminderAt:  input.ReminderAt,
	})
	if err != nil {
		return nil, err
	}

	// Cobre a lista geral e a lista do lead.
	e.Cache.InvalidatePrefix("follow_ups")
	return followUp, nil
}

func (e *PipelineEngine) SetFollowUpCompleted(ctx context.Context, followUpID string, completed bool) (*entity.FollowUp, error) {
	if err := requirePrincipal(ctx); err != nil {
		return nil, err
	}

	followUp, err := e.FollowUpRepo.SetCompleted(ctx, followUpID, completed)
	if err != nil {
		return nil, err
	}

	e.Cache.InvalidatePrefix("follow_ups")
	return followUp, nil
}

// findLead localiza o lead no snapshot cacheado (carregando se preciso).
func (e *PipelineEngine) findLead(ctx context.Context, leadID string) (*entity.Lead, error) {
	leads, err := e.Leads(ctx)
	if err != nil {
		return nil, err
	}
	for i := range leads {
		if leads[i].ID == leadID {
			return &leads[i], nil
		}
	}
	return nil, &entity.NotFoundError{Message: fmt.Sprintf("lead %s not found", leadID)}
}

// GroupByStage particiona o snapshot em colunas do kanban, preservando
// a ordem relativa de cada lead. As quatro colunas sempre existem,
// mesmo vazias.
func GroupByStage(leads []entity.Lead) map[entity.Stage][]entity.Lead {
	grouped := make(map[entity.Stage][]entity.Lead, len(entity.Stages))
	for _, s := range entity.Stages {
		grouped[s] = []entity.Lead{}
	}
	for _, l := range leads {
		if _, ok := grouped[l.Stage]; ok {
			grouped[l.Stage] = append(grouped[l.Stage], l)
		}
	}
	return grouped
}
