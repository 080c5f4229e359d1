package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	"rentix_backend/internals/features/finance/payments/model"
)

/* ===================== Eventos ===================== */

type EventType string

const (
	EventMarkPaid    EventType = "mark_paid"
	EventMarkOverdue EventType = "mark_overdue"
	EventCancel      EventType = "cancel"
)

type Event struct {
	Type        EventType
	PaymentDate *time.Time // MarkPaid: default now
	Reason      *string    // Cancel: default "Cancelado pelo gestor"
}

/* ===================== Efeitos ===================== */
/* A transição é pura: muta o payment em memória e devolve descritores de
   efeito. O chamador persiste os audits/logs na MESMA transação do payment
   e dispara as notificações só depois do commit. */

type AuditEffect struct {
	Action   string
	OldValue datatypes.JSONMap
	NewValue datatypes.JSONMap
}

type NotifyEffect struct {
	Kind      string // payment_canceled, payment_canceled_manager, ...
	ToManager bool
}

type Effects struct {
	Audits   []AuditEffect
	Notifies []NotifyEffect
	Logs     []string // mensagens para o NotificationLog
}

/* ===================== Transição ===================== */

// ApplyTransition governa o ciclo pendente → pago | atrasado | cancelado.
// Toda transição que muda status gera exatamente um AuditEffect próprio;
// a aplicação de multa gera o seu ("Multa aplicada por atraso").
func ApplyTransition(p *model.Payment, ev Event, settings *finemodel.FineSettings, now time.Time) (Effects, error) {
	var eff Effects

	if p.IsCancelado() {
		return eff, fiber.NewError(fiber.StatusConflict, "Pagamento cancelado é terminal e não pode ser alterado.")
	}

	switch ev.Type {
	case EventMarkPaid:
		return markPaid(p, ev, settings, now)
	case EventMarkOverdue:
		return markOverdue(p, settings, now)
	case EventCancel:
		return cancel(p, ev, now)
	default:
		return eff, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Evento de transição desconhecido: %s", ev.Type))
	}
}

func markPaid(p *model.Payment, ev Event, settings *finemodel.FineSettings, now time.Time) (Effects, error) {
	var eff Effects

	if p.PaymentStatus == model.PaymentStatusPago {
		return eff, fiber.NewError(fiber.StatusConflict, "Pagamento já está pago.")
	}

	paymentDate := now
	if ev.PaymentDate != nil {
		paymentDate = *ev.PaymentDate
	}

	// Quitação em atraso ainda passa pelo fine engine (com guarda de ciclo).
	if paymentDate.After(p.PaymentDueDate) {
		appendFineEffects(&eff, ApplyLateFine(p, settings, now))
	}

	oldStatus := p.PaymentStatus
	p.PaymentStatus = model.PaymentStatusPago
	p.PaymentDate = &paymentDate
	p.PaymentStatusChangedAt = &now
	NormalizeAmounts(p)

	eff.Audits = append(eff.Audits, AuditEffect{
		Action:   "Status atualizado para pago",
		OldValue: datatypes.JSONMap{"status": oldStatus},
		NewValue: datatypes.JSONMap{
			"status":       model.PaymentStatusPago,
			"payment_date": paymentDate,
		},
	})
	eff.Logs = append(eff.Logs, "Pagamento atualizado")
	return eff, nil
}

func markOverdue(p *model.Payment, settings *finemodel.FineSettings, now time.Time) (Effects, error) {
	var eff Effects

	if p.PaymentStatus != model.PaymentStatusPendente {
		return eff, fiber.NewError(fiber.StatusConflict, "Apenas pagamentos pendentes podem ficar atrasados.")
	}
	if !now.After(p.PaymentDueDate) {
		return eff, fiber.NewError(fiber.StatusUnprocessableEntity, "Pagamento ainda não venceu.")
	}

	appendFineEffects(&eff, ApplyLateFine(p, settings, now))

	oldStatus := p.PaymentStatus
	p.PaymentStatus = model.PaymentStatusAtrasado
	p.PaymentStatusChangedAt = &now
	NormalizeAmounts(p)

	eff.Audits = append(eff.Audits, AuditEffect{
		Action:   "Status atualizado para atrasado",
		OldValue: datatypes.JSONMap{"status": oldStatus},
		NewValue: datatypes.JSONMap{
			"status":       model.PaymentStatusAtrasado,
			"fine_amount":  p.PaymentFineAmount,
			"total_amount": p.PaymentTotalAmount,
		},
	})
	eff.Logs = append(eff.Logs, "Pagamento atualizado")
	return eff, nil
}

func cancel(p *model.Payment, ev Event, now time.Time) (Effects, error) {
	var eff Effects

	reason := model.DefaultCancellationReason
	if ev.Reason != nil && *ev.Reason != "" {
		reason = *ev.Reason
	}

	oldStatus := p.PaymentStatus
	p.PaymentStatus = model.PaymentStatusCancelado
	p.PaymentCancellationReason = &reason
	p.PaymentCancellationDate = &now
	p.PaymentStatusChangedAt = &now

	eff.Audits = append(eff.Audits, AuditEffect{
		Action:   "Pagamento cancelado",
		OldValue: datatypes.JSONMap{"status": oldStatus},
		NewValue: datatypes.JSONMap{
			"status":              model.PaymentStatusCancelado,
			"cancellation_date":   now,
			"cancellation_reason": reason,
		},
	})
	// Cancelamento notifica inquilino e gestor na hora (best-effort, pós-commit).
	eff.Notifies = append(eff.Notifies,
		NotifyEffect{Kind: "payment_canceled"},
		NotifyEffect{Kind: "payment_canceled_manager", ToManager: true},
	)
	eff.Logs = append(eff.Logs, "Pagamento cancelado e notificações enviadas")
	return eff, nil
}

func appendFineEffects(eff *Effects, app *FineApplication) {
	if app == nil {
		return
	}
	eff.Audits = append(eff.Audits, AuditEffect{
		Action: "Multa aplicada por atraso",
		OldValue: datatypes.JSONMap{
			"status":      app.OldStatus,
			"fine_amount": app.OldFineAmount,
		},
		NewValue: datatypes.JSONMap{
			"status":      model.PaymentStatusAtrasado,
			"fine_amount": app.FineAmount,
			"fine_count":  app.FineCount,
		},
	})
	eff.Logs = append(eff.Logs, "Multa aplicada a um inquilino e notificações enviadas")
}
