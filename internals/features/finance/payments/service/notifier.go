package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"rentix_backend/internals/features/finance/payments/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

/* ===================== Notifier ===================== */
/* Canal de saída (e-mail/SMS) visto pelo core como colaborador estreito.
   Implementado em features/notifications/service. */

type Notifier interface {
	SendPaymentNotification(kind string, p *model.Payment, tenant *tenantmodel.Tenant, manager *authmodel.Manager, extra map[string]any) error
}

// Tipos de notificação (sufixo _manager = destinatário é o gestor).
const (
	NotifyPaymentCreated         = "payment_created"
	NotifyPaymentCreatedManager  = "payment_created_manager"
	NotifyPaymentPaid            = "payment_paid"
	NotifyPaymentOverdue         = "payment_overdue"
	NotifyPaymentCanceled        = "payment_canceled"
	NotifyPaymentCanceledManager = "payment_canceled_manager"
	NotifyReminderPending        = "reminder_pending"
	NotifyReminderOverdue        = "reminder_overdue"
	NotifyReminderCritical       = "reminder_critical"
	NotifyCriticalManager        = "critical_manager"
)

// DispatchEffects envia as notificações de uma transição já commitada.
// Best-effort: falha de envio é logada e nunca desfaz o estado financeiro.
func DispatchEffects(db *gorm.DB, notifier Notifier, p *model.Payment, eff Effects) {
	if notifier == nil || len(eff.Notifies) == 0 {
		return
	}

	tenant, manager, err := loadRecipients(db, p)
	if err != nil {
		log.Printf("[NOTIFY] destinatários do pagamento %s indisponíveis: %v", p.PaymentID, err)
		return
	}

	for _, n := range eff.Notifies {
		if err := notifier.SendPaymentNotification(n.Kind, p, tenant, manager, nil); err != nil {
			log.Printf("[NOTIFY] falha ao enviar %s do pagamento %s: %v", n.Kind, p.PaymentID, err)
		}
	}
}

func loadRecipients(db *gorm.DB, p *model.Payment) (*tenantmodel.Tenant, *authmodel.Manager, error) {
	var tenant tenantmodel.Tenant
	var manager authmodel.Manager

	if err := db.First(&tenant, "tenant_id = ?", p.PaymentTenantID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	if err := db.First(&manager, "manager_id = ?", p.PaymentManagerID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	return &tenant, &manager, nil
}
