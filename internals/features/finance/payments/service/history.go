package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	notifmodel "rentix_backend/internals/features/notifications/model"

	"rentix_backend/internals/features/finance/payments/model"
)

/* ===================== Trilha de auditoria ===================== */

// RecordPaymentHistory acrescenta uma entrada imutável no payment_history.
func RecordPaymentHistory(tx *gorm.DB, paymentID uuid.UUID, action string, oldValue, newValue datatypes.JSONMap, changedBy uuid.UUID) error {
	entry := model.PaymentHistory{
		PaymentHistoryPaymentID: paymentID,
		PaymentHistoryAction:    action,
		PaymentHistoryOldValue:  oldValue,
		PaymentHistoryNewValue:  newValue,
		PaymentHistoryChangedBy: changedBy,
	}
	if err := tx.Create(&entry).Error; err != nil {
		log.Printf("[HISTORY] erro ao criar histórico do pagamento %s: %v", paymentID, err)
		return err
	}
	return nil
}

// PaymentSnapshot serializa os campos relevantes de um pagamento para auditoria.
func PaymentSnapshot(p *model.Payment) datatypes.JSONMap {
	return datatypes.JSONMap{
		"payment_id":      p.PaymentID,
		"status":          p.PaymentStatus,
		"amount":          p.PaymentAmount,
		"fine_amount":     p.PaymentFineAmount,
		"total_amount":    p.PaymentTotalAmount,
		"fine_count":      p.PaymentFineCount,
		"due_date":        p.PaymentDueDate,
		"reference_month": p.PaymentReferenceMonth,
		"tenant_id":       p.PaymentTenantID,
		"property_id":     p.PaymentPropertyID,
	}
}

// PersistEffects grava audits e NotificationLogs na MESMA transação do
// pagamento. As notificações (e-mail/SMS) ficam para depois do commit.
func PersistEffects(tx *gorm.DB, p *model.Payment, eff Effects, changedBy uuid.UUID) error {
	for _, a := range eff.Audits {
		if err := RecordPaymentHistory(tx, p.PaymentID, a.Action, a.OldValue, a.NewValue, changedBy); err != nil {
			return err
		}
	}
	for _, msg := range eff.Logs {
		logRow := notifmodel.NotificationLog{
			NotificationLogTenantID:  p.PaymentTenantID,
			NotificationLogManagerID: p.PaymentManagerID,
			NotificationLogMessage:   msg,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return err
		}
	}
	return nil
}
