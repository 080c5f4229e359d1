package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentix_backend/internals/constants"
	"rentix_backend/internals/features/finance/payments/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

/* ===================== Varredura diária ===================== */
/* Ordem no cron: MarkOverduePayments → SendAllPaymentNotifications →
   CheckStatusChanges. A detecção de atraso roda antes para que os
   lembretes já enxerguem o status correto. */

type SweepResult struct {
	Pending  int `json:"pending"`
	Overdue  int `json:"overdue"`
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
}

// MarkOverduePayments vira pendentes vencidos para atrasado via state machine,
// um por transação com lock de linha. Devolve quantos viraram.
func MarkOverduePayments(db *gorm.DB, now time.Time) int {
	var ids []uuid.UUID
	if err := db.Model(&model.Payment{}).
		Where("payment_status = ? AND payment_due_date < ?", model.PaymentStatusPendente, now).
		Pluck("payment_id", &ids).Error; err != nil {
		log.Printf("[SWEEP] erro ao listar pendentes vencidos: %v", err)
		return 0
	}

	flipped := 0
	for _, id := range ids {
		err := db.Transaction(func(tx *gorm.DB) error {
			var p model.Payment
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, "payment_id = ?", id).Error; err != nil {
				return err
			}
			// Pode ter mudado entre o Pluck e o lock.
			if p.PaymentStatus != model.PaymentStatusPendente || !p.PastDue(now) {
				return nil
			}

			settings, err := FineSettingsForManager(tx, p.PaymentManagerID)
			if err != nil {
				return err
			}
			eff, err := ApplyTransition(&p, Event{Type: EventMarkOverdue}, settings, now)
			if err != nil {
				return err
			}
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
			if err := PersistEffects(tx, &p, eff, p.PaymentManagerID); err != nil {
				return err
			}
			flipped++
			return nil
		})
		if err != nil {
			log.Printf("[SWEEP] erro ao marcar pagamento %s como atrasado: %v", id, err)
		}
	}
	if flipped > 0 {
		log.Printf("[SWEEP] %d pagamentos marcados como atrasados", flipped)
	}
	return flipped
}

// SendAllPaymentNotifications percorre os gestores ativos e envia os lembretes
// das três faixas (pending/overdue/critical). Falhas são contadas e logadas,
// nunca abortam o lote.
func SendAllPaymentNotifications(db *gorm.DB, notifier Notifier, now time.Time) SweepResult {
	var res SweepResult

	var managers []authmodel.Manager
	if err := db.Where("manager_status = ?", authmodel.ManagerStatusAtivo).Find(&managers).Error; err != nil {
		log.Printf("[SWEEP] erro ao listar gestores: %v", err)
		res.Errors++
		return res
	}

	for i := range managers {
		sweepManager(db, notifier, &managers[i], now, &res)
	}

	log.Printf("[SWEEP] lembretes enviados: %d pending, %d overdue, %d critical, %d erros",
		res.Pending, res.Overdue, res.Critical, res.Errors)
	return res
}

func sweepManager(db *gorm.DB, notifier Notifier, manager *authmodel.Manager, now time.Time, res *SweepResult) {
	var payments []model.Payment
	if err := db.
		Where("payment_manager_id = ? AND payment_status IN ?",
			manager.ManagerID, []string{model.PaymentStatusPendente, model.PaymentStatusAtrasado}).
		Find(&payments).Error; err != nil {
		log.Printf("[SWEEP] gestor %s: erro ao listar pagamentos: %v", manager.ManagerID, err)
		res.Errors++
		return
	}

	for i := range payments {
		p := &payments[i]
		tier := ClassifyReminder(p, now)
		if tier == TierNone {
			continue
		}
		if err := sendReminder(db, notifier, p, manager, tier, now); err != nil {
			log.Printf("[SWEEP] pagamento %s (%s): %v", p.PaymentID, tier, err)
			res.Errors++
			continue
		}
		switch tier {
		case TierPending:
			res.Pending++
		case TierOverdue:
			res.Overdue++
		case TierCritical:
			res.Critical++
		}
	}
}

// sendReminder envia o lembrete de um pagamento e registra o envio:
// count++ e last_notification_sent na MESMA transação do histórico/log.
// A faixa crítica também alerta o gestor.
func sendReminder(db *gorm.DB, notifier Notifier, p *model.Payment, manager *authmodel.Manager, tier ReminderTier, now time.Time) error {
	eff := Effects{
		Notifies: []NotifyEffect{{Kind: ReminderKind(tier)}},
		Logs:     []string{"Lembrete de pagamento enviado (" + string(tier) + ")"},
		Audits: []AuditEffect{{
			Action:   "Notificação enviada",
			OldValue: datatypes.JSONMap{"notification_count": p.PaymentNotificationCount},
			NewValue: datatypes.JSONMap{
				"notification_count": p.PaymentNotificationCount + 1,
				"reminder_tier":      string(tier),
			},
		}},
	}
	if tier == TierCritical {
		eff.Notifies = append(eff.Notifies, NotifyEffect{Kind: NotifyCriticalManager, ToManager: true})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Payment{}).
			Where("payment_id = ?", p.PaymentID).
			Updates(map[string]any{
				"payment_notification_count":     gorm.Expr("payment_notification_count + 1"),
				"payment_last_notification_sent": now,
			}).Error; err != nil {
			return err
		}
		return PersistEffects(tx, p, eff, manager.ManagerID)
	})
	if err != nil {
		return err
	}

	p.PaymentNotificationCount++
	p.PaymentLastNotificationSent = &now

	DispatchEffects(db, notifier, p, eff)
	return nil
}

// CheckStatusChanges notifica mudanças recentes de status (pago/atrasado nas
// últimas 24h) uma única vez e limpa o marcador status_changed_at.
func CheckStatusChanges(db *gorm.DB, notifier Notifier, now time.Time) int {
	cutoff := now.Add(-time.Duration(constants.StatusChangeNoticeHr) * time.Hour)

	var ids []uuid.UUID
	if err := db.Model(&model.Payment{}).
		Where("payment_status_changed_at IS NOT NULL AND payment_status_changed_at >= ?", cutoff).
		Where("payment_status IN ?", []string{model.PaymentStatusPago, model.PaymentStatusAtrasado}).
		Pluck("payment_id", &ids).Error; err != nil {
		log.Printf("[SWEEP] erro ao listar mudanças de status: %v", err)
		return 0
	}

	notified := 0
	for _, id := range ids {
		var snapshot model.Payment
		err := db.Transaction(func(tx *gorm.DB) error {
			var p model.Payment
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, "payment_id = ?", id).Error; err != nil {
				return err
			}
			if p.PaymentStatusChangedAt == nil || p.PaymentStatusChangedAt.Before(cutoff) {
				return nil // outro worker chegou primeiro
			}
			if err := tx.Model(&model.Payment{}).
				Where("payment_id = ?", p.PaymentID).
				Update("payment_status_changed_at", nil).Error; err != nil {
				return err
			}
			snapshot = p
			return nil
		})
		if err != nil {
			log.Printf("[SWEEP] erro ao processar mudança de status %s: %v", id, err)
			continue
		}
		if snapshot.PaymentID == uuid.Nil {
			continue
		}

		kind := NotifyPaymentPaid
		if snapshot.PaymentStatus == model.PaymentStatusAtrasado {
			kind = NotifyPaymentOverdue
		}
		DispatchEffects(db, notifier, &snapshot, Effects{Notifies: []NotifyEffect{{Kind: kind}}})
		notified++
	}
	return notified
}
