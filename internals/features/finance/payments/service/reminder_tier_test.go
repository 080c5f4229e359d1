package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentix_backend/internals/features/finance/payments/model"
)

func TestClassifyReminder(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	daysAfter := func(d int) time.Time { return due.AddDate(0, 0, d).Add(12 * time.Hour) }
	hoursAgo := func(now time.Time, h int) *time.Time {
		ts := now.Add(-time.Duration(h) * time.Hour)
		return &ts
	}

	tests := []struct {
		name      string
		status    string
		now       time.Time
		notif     int
		lastSent  *time.Time
		wantTier  ReminderTier
	}{
		{"pendente futuro sem notificação", model.PaymentStatusPendente, due.AddDate(0, 0, -3), 0, nil, TierPending},
		{"pendente futuro já notificado", model.PaymentStatusPendente, due.AddDate(0, 0, -3), 1, nil, TierNone},
		{"pendente vencido não recebe lembrete", model.PaymentStatusPendente, daysAfter(2), 0, nil, TierNone},

		{"atrasado 2 dias, 0 notificações", model.PaymentStatusAtrasado, daysAfter(2), 0, nil, TierOverdue},
		{"atrasado 6 dias, 2 notificações", model.PaymentStatusAtrasado, daysAfter(6), 2, nil, TierOverdue},
		{"atrasado 6 dias, 3 notificações esgota a faixa", model.PaymentStatusAtrasado, daysAfter(6), 3, nil, TierNone},

		{"atrasado 10 dias, 3 notificações", model.PaymentStatusAtrasado, daysAfter(10), 3, nil, TierCritical},
		{"atrasado 10 dias, 5 notificações", model.PaymentStatusAtrasado, daysAfter(10), 5, nil, TierCritical},
		{"atrasado 10 dias, 1 notificação fica em silêncio", model.PaymentStatusAtrasado, daysAfter(10), 1, nil, TierNone},

		{"6+ notificações sem envio recente reenvia", model.PaymentStatusAtrasado, daysAfter(20), 6, nil, TierCritical},
		{"6+ notificações com envio há 1 dia segura", model.PaymentStatusAtrasado, daysAfter(20), 7, hoursAgo(daysAfter(20), 24), TierNone},
		{"6+ notificações com envio há 4 dias reenvia", model.PaymentStatusAtrasado, daysAfter(20), 7, hoursAgo(daysAfter(20), 96+1), TierCritical},

		{"pago nunca recebe lembrete", model.PaymentStatusPago, daysAfter(10), 0, nil, TierNone},
		{"cancelado nunca recebe lembrete", model.PaymentStatusCancelado, daysAfter(10), 0, nil, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPayment("1000.00", tt.status)
			p.PaymentDueDate = due
			p.PaymentNotificationCount = tt.notif
			p.PaymentLastNotificationSent = tt.lastSent

			assert.Equal(t, tt.wantTier, ClassifyReminder(p, tt.now))
		})
	}
}

func TestReminderKind(t *testing.T) {
	assert.Equal(t, NotifyReminderPending, ReminderKind(TierPending))
	assert.Equal(t, NotifyReminderOverdue, ReminderKind(TierOverdue))
	assert.Equal(t, NotifyReminderCritical, ReminderKind(TierCritical))
	assert.Equal(t, "", ReminderKind(TierNone))
}
