package usecase

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Views de agregação: funções puras sobre um snapshot do cache.
// Nenhum round-trip extra — o dashboard e as listas filtradas derivam
// tudo do que já está em memória.

// StageCounts: a soma dos buckets sempre bate com len(leads).
func StageCounts(leads []entity.Lead) map[entity.Stage]int {
	counts := make(map[entity.Stage]int, len(entity.Stages))
	for _, s := range entity.Stages {
		counts[s] = 0
	}
	for _, l := range leads {
		if _, ok := counts[l.Stage]; ok {
			counts[l.Stage]++
		}
	}
	return counts
}

// ConversionRate: round(converted/total × 100); 0 com lista vazia.
func ConversionRate(leads []entity.Lead) int {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, l := range leads {
		if l.Stage == entity.StageConverted {
			converted++
		}
	}
	return int(math.Round(float64(converted) / float64(len(leads)) * 100))
}

// ClassifyReminder deriva a urgência de um lembrete em relação a now,
// por dia de calendário no fuso de now: atrasado e de outro dia é
// Overdue; hoje é Today mesmo que a hora já passou; amanhã é Tomorrow.
func ClassifyReminder(reminderAt, now time.Time) Urgency {
	r := reminderAt.In(now.Location())
	switch {
	case sameDay(r, now):
		return UrgencyToday
	case reminderAt.Before(now):
		return UrgencyOverdue
	case sameDay(r, now.AddDate(0, 0, 1)):
		return UrgencyTomorrow
	}
	return UrgencyNone
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// UpcomingFollowUps: só os não concluídos, reminder_at asc, cada um
// com a urgência derivada. Sort estável pra empate manter a ordem de
// entrada.
func UpcomingFollowUps(followUps []entity.FollowUp, now time.Time) []PendingFollowUp {
	pending := make([]PendingFollowUp, 0, len(followUps))
	for _, f := range followUps {
		if f.Completed {
			continue
		}
		pending = append(pending, PendingFollowUp{
			FollowUp: f,
			Urgency:  ClassifyReminder(f.ReminderAt, now),
		})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].ReminderAt.Before(pending[j].ReminderAt)
	})
	return pending
}

// SearchLeads: substring case-insensitive em nome, email, company e
// source, preservando a ordem. Texto vazio devolve a entrada como está.
func SearchLeads(leads []entity.Lead, text string) []entity.Lead {
	if text == "" {
		return leads
	}
	q := strings.ToLower(text)
	matched := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Email), q) ||
			strings.Contains(strings.ToLower(l.Company), q) ||
			strings.Contains(strings.ToLower(l.Source), q) {
			matched = append(matched, l)
		}
	}
	return matched
}

// RecentLeads: os n primeiros do snapshot (que já vem created_at desc).
func RecentLeads(leads []entity.Lead, n int) []entity.Lead {
	if len(leads) <= n {
		return leads
	}
	return leads[:n]
}

// PendingFollowUpsPreview: os n próximos follow-ups não concluídos,
// pro card do dashboard.
func PendingFollowUpsPreview(followUps []entity.FollowUp, now time.Time, n int) []PendingFollowUp {
	pending := UpcomingFollowUps(followUps, now)
	if len(pending) <= n {
		return pending
	}
	return pending[:n]
}
