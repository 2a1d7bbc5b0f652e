package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/session"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// ReminderWorker varre os follow-ups do principal configurado e
// publica um lembrete na fila quando um deles vence. O envio de email
// em si acontece no consumer (queue.Worker); aqui só detecção.
type ReminderWorker struct {
	leadRepo     usecase.LeadRepositoryInterface
	followUpRepo usecase.FollowUpRepositoryInterface
	producer     queue.ReminderProducerInterface
	principalID  string
	ownerEmail   string
	tickInterval time.Duration

	published map[string]bool // follow-ups já publicados neste processo
}

func NewReminderWorker(
	leadRepo usecase.LeadRepositoryInterface,
	followUpRepo usecase.FollowUpRepositoryInterface,
	producer queue.ReminderProducerInterface,
	principalID, ownerEmail string,
) *ReminderWorker {
	return &ReminderWorker{
		leadRepo:     leadRepo,
		followUpRepo: followUpRepo,
		producer:     producer,
		principalID:  principalID,
		ownerEmail:   ownerEmail,
		tickInterval: 1 * time.Minute,
		published:    make(map[string]bool),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Println("🕒 Reminder Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	ctx = session.WithPrincipal(ctx, w.principalID)
	w.scanDueFollowUps(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Reminder Worker encerrado")
			return
		case <-ticker.C:
			w.scanDueFollowUps(ctx)
		}
	}
}

func (w *ReminderWorker) scanDueFollowUps(ctx context.Context) {
	followUps, err := w.followUpRepo.List(ctx, "")
	if err != nil {
		log.Printf("❌ Erro ao buscar follow-ups: %v", err)
		return
	}

	now := time.Now()
	due := make([]entity.FollowUp, 0)
	for _, f := range followUps {
		if !f.Completed && !f.ReminderAt.After(now) && !w.published[f.ID] {
			due = append(due, f)
		}
	}
	if len(due) == 0 {
		return
	}

	leadByID := make(map[string]entity.Lead)
	leads, err := w.leadRepo.List(ctx)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads: %v", err)
		return
	}
	for _, l := range leads {
		leadByID[l.ID] = l
	}

	for _, f := range due {
		lead, ok := leadByID[f.LeadID]
		if !ok {
			// Lead sumiu entre o cascade e a varredura; ignora.
			continue
		}

		payload := queue.ReminderPayload{
			FollowUpID:  f.ID,
			LeadID:      lead.ID,
			LeadName:    lead.Name,
			LeadEmail:   lead.Email,
			OwnerEmail:  w.ownerEmail,
			Description: f.Description,
			ReminderAt:  f.ReminderAt.Format(time.RFC3339),
		}

		if err := w.producer.PublishReminder(ctx, payload); err != nil {
			log.Printf("❌ Falha ao publicar lembrete do follow-up %s: %v", f.ID, err)
			continue
		}

		w.published[f.ID] = true
		log.Printf("⏱️ Lembrete publicado: follow-up=%s lead=%s", f.ID, lead.Name)
	}
}
