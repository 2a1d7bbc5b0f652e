package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func TestStageCountsSumEqualsTotal(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Stage: entity.StageNew},
		{ID: "2", Stage: entity.StageNew},
		{ID: "3", Stage: entity.StageContacted},
		{ID: "4", Stage: entity.StageConverted},
		{ID: "5", Stage: entity.StageLost},
	}

	counts := usecase.StageCounts(leads)

	sum := 0
	for _, stage := range entity.Stages {
		sum += counts[stage]
	}
	assert.Equal(t, len(leads), sum)
	assert.Equal(t, 2, counts[entity.StageNew])
	assert.Equal(t, 1, counts[entity.StageContacted])
	assert.Equal(t, 1, counts[entity.StageConverted])
	assert.Equal(t, 1, counts[entity.StageLost])
}

func TestStageCountsEmpty(t *testing.T) {
	counts := usecase.StageCounts(nil)
	assert.Len(t, counts, 4)
	for _, stage := range entity.Stages {
		assert.Equal(t, 0, counts[stage])
	}
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0, usecase.ConversionRate([]entity.Lead{}))

	leads := make([]entity.Lead, 0, 10)
	for i := 0; i < 3; i++ {
		leads = append(leads, entity.Lead{Stage: entity.StageConverted})
	}
	for i := 0; i < 7; i++ {
		leads = append(leads, entity.Lead{Stage: entity.StageContacted})
	}
	assert.Equal(t, 30, usecase.ConversionRate(leads))

	// 1 de 3 arredonda pra 33.
	assert.Equal(t, 33, usecase.ConversionRate([]entity.Lead{
		{Stage: entity.StageConverted},
		{Stage: entity.StageNew},
		{Stage: entity.StageNew},
	}))
}

func TestClassifyReminder(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	// 1h atrás, mesmo dia de calendário: Today, não Overdue.
	assert.Equal(t, usecase.UrgencyToday, usecase.ClassifyReminder(now.Add(-1*time.Hour), now))

	// 25h atrás, dia anterior: Overdue.
	assert.Equal(t, usecase.UrgencyOverdue, usecase.ClassifyReminder(now.Add(-25*time.Hour), now))

	// 20h adiante, dia seguinte: Tomorrow.
	assert.Equal(t, usecase.UrgencyTomorrow, usecase.ClassifyReminder(now.Add(20*time.Hour), now))

	// Mais tarde hoje ainda é Today.
	assert.Equal(t, usecase.UrgencyToday, usecase.ClassifyReminder(now.Add(3*time.Hour), now))

	// Semana que vem não tem badge.
	assert.Equal(t, usecase.UrgencyNone, usecase.ClassifyReminder(now.AddDate(0, 0, 7), now))
}

func TestUpcomingFollowUps(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	followUps := []entity.FollowUp{
		{ID: "done", ReminderAt: now.Add(-2 * time.Hour), Completed: true},
		{ID: "later", ReminderAt: now.Add(20 * time.Hour)},
		{ID: "overdue", ReminderAt: now.Add(-25 * time.Hour)},
		{ID: "soon", ReminderAt: now.Add(1 * time.Hour)},
	}

	pending := usecase.UpcomingFollowUps(followUps, now)

	assert.Len(t, pending, 3)
	assert.Equal(t, "overdue", pending[0].ID)
	assert.Equal(t, usecase.UrgencyOverdue, pending[0].Urgency)
	assert.Equal(t, "soon", pending[1].ID)
	assert.Equal(t, usecase.UrgencyToday, pending[1].Urgency)
	assert.Equal(t, "later", pending[2].ID)
	assert.Equal(t, usecase.UrgencyTomorrow, pending[2].Urgency)
}

func TestSearchLeads(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Name: "Maria", Company: "Acme Corp"},
		{ID: "2", Name: "José", Company: "Globex"},
		{ID: "3", Name: "Ana", Email: "ana@acmemail.com"},
	}

	matched := usecase.SearchLeads(leads, "acme")
	assert.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)

	// Texto vazio devolve a entrada como está.
	assert.Equal(t, leads, usecase.SearchLeads(leads, ""))

	// Busca por source também.
	leads[1].Source = "indicação"
	assert.Len(t, usecase.SearchLeads(leads, "INDICA"), 1)
}

func TestRecentLeads(t *testing.T) {
	leads := []entity.Lead{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	assert.Len(t, usecase.RecentLeads(leads, 5), 3)
	top := usecase.RecentLeads(leads, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "1", top[0].ID)
}
