package service

import (
	"time"

	"rentix_backend/internals/constants"
	"rentix_backend/internals/features/finance/payments/model"
)

/* ===================== Classificação de lembretes ===================== */
/* Função pura de (payment, now); a janela de cada faixa e o throttling
   usam payment_notification_count / payment_last_notification_sent. */

type ReminderTier string

const (
	TierNone     ReminderTier = ""
	TierPending  ReminderTier = "pending"
	TierOverdue  ReminderTier = "overdue"
	TierCritical ReminderTier = "critical"
)

const (
	// Dias de atraso que separam "atrasado recente" de "crítico".
	overdueWindowDays = constants.OverdueWindowDays
	// Intervalo mínimo entre reenvios críticos após a 6ª notificação.
	criticalResendDays = constants.CriticalResendDays
	// Limite de lembretes na faixa "overdue".
	maxOverdueReminders = 3
)

// ClassifyReminder decide qual lembrete (se algum) um pagamento deve receber.
//
//   - pending:  pendente, vencimento no futuro, nenhuma notificação enviada;
//   - overdue:  atrasado, vencido há <= 7 dias, menos de 3 notificações;
//   - critical: atrasado, vencido há > 7 dias, e (3..5 notificações, ou >= 6
//     com o último envio há mais de 3 dias).
//
// Fora dessas janelas devolve TierNone. Silenciar também é decisão.
func ClassifyReminder(p *model.Payment, now time.Time) ReminderTier {
	switch p.PaymentStatus {
	case model.PaymentStatusPendente:
		if p.PaymentDueDate.After(now) && p.PaymentNotificationCount == 0 {
			return TierPending
		}
		return TierNone

	case model.PaymentStatusAtrasado:
		if !now.After(p.PaymentDueDate) {
			return TierNone
		}
		daysPast := now.Sub(p.PaymentDueDate)

		if daysPast <= overdueWindowDays*24*time.Hour {
			if p.PaymentNotificationCount < maxOverdueReminders {
				return TierOverdue
			}
			return TierNone
		}

		count := p.PaymentNotificationCount
		if count >= 3 && count <= 5 {
			return TierCritical
		}
		if count >= 6 {
			if p.PaymentLastNotificationSent == nil ||
				now.Sub(*p.PaymentLastNotificationSent) > criticalResendDays*24*time.Hour {
				return TierCritical
			}
		}
		return TierNone

	default:
		return TierNone
	}
}

// ReminderKind mapeia a faixa para o tipo de notificação do inquilino.
func ReminderKind(tier ReminderTier) string {
	switch tier {
	case TierPending:
		return NotifyReminderPending
	case TierOverdue:
		return NotifyReminderOverdue
	case TierCritical:
		return NotifyReminderCritical
	default:
		return ""
	}
}
