package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentix_backend/internals/features/finance/payments/model"
)

var (
	beforeDue = time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)
	afterDue  = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
)

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "esperava *fiber.Error, veio %T", err)
	return fe.Code
}

func TestMarkPaid_OnTime(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)

	eff, err := ApplyTransition(p, Event{Type: EventMarkPaid}, newTestSettings("0.03"), beforeDue)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPago, p.PaymentStatus)
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, beforeDue, *p.PaymentDate)
	assert.True(t, p.PaymentFineAmount.IsZero(), "pagamento em dia não leva multa")
	require.NotNil(t, p.PaymentStatusChangedAt)

	require.Len(t, eff.Audits, 1)
	assert.Equal(t, "Status atualizado para pago", eff.Audits[0].Action)
}

func TestMarkPaid_LateSettlementAppliesFine(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)

	eff, err := ApplyTransition(p, Event{Type: EventMarkPaid}, newTestSettings("0.03"), afterDue)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPago, p.PaymentStatus)
	assert.True(t, p.PaymentFineAmount.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, p.PaymentTotalAmount.Equal(decimal.RequireFromString("1030.00")))

	// Multa e mudança de status geram audits separados.
	require.Len(t, eff.Audits, 2)
	assert.Equal(t, "Multa aplicada por atraso", eff.Audits[0].Action)
	assert.Equal(t, "Status atualizado para pago", eff.Audits[1].Action)
}

func TestMarkPaid_AfterOverdueDoesNotDoubleFine(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)
	settings := newTestSettings("0.03")

	_, err := ApplyTransition(p, Event{Type: EventMarkOverdue}, settings, afterDue)
	require.NoError(t, err)
	require.Equal(t, 1, p.PaymentFineCount)

	eff, err := ApplyTransition(p, Event{Type: EventMarkPaid}, settings, afterDue.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, p.PaymentFineCount, "quitação de atrasado não pode multar de novo")
	assert.True(t, p.PaymentFineAmount.Equal(decimal.RequireFromString("30.00")))
	require.Len(t, eff.Audits, 1)
	assert.Equal(t, "Status atualizado para pago", eff.Audits[0].Action)
}

func TestMarkPaid_AlreadyPaidConflicts(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPago)
	_, err := ApplyTransition(p, Event{Type: EventMarkPaid}, nil, beforeDue)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestMarkOverdue(t *testing.T) {
	t.Run("pendente vencido vira atrasado com multa", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusPendente)
		eff, err := ApplyTransition(p, Event{Type: EventMarkOverdue}, newTestSettings("0.03"), afterDue)
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStatusAtrasado, p.PaymentStatus)
		assert.Equal(t, 1, p.PaymentFineCount)
		require.NotNil(t, p.PaymentStatusChangedAt)
		require.Len(t, eff.Audits, 2)
		assert.Equal(t, "Status atualizado para atrasado", eff.Audits[1].Action)
	})

	t.Run("não vencido é rejeitado", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusPendente)
		_, err := ApplyTransition(p, Event{Type: EventMarkOverdue}, nil, beforeDue)
		require.Error(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	})

	t.Run("pago não regride para atrasado", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusPago)
		_, err := ApplyTransition(p, Event{Type: EventMarkOverdue}, nil, afterDue)
		require.Error(t, err)
		assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
	})

	t.Run("sem settings a transição acontece sem multa", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusPendente)
		eff, err := ApplyTransition(p, Event{Type: EventMarkOverdue}, nil, afterDue)
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStatusAtrasado, p.PaymentStatus)
		assert.True(t, p.PaymentFineAmount.IsZero())
		assert.Equal(t, 0, p.PaymentFineCount)
		require.Len(t, eff.Audits, 1)
	})
}

func TestCancel(t *testing.T) {
	t.Run("motivo default e efeitos de notificação", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusPendente)
		eff, err := ApplyTransition(p, Event{Type: EventCancel}, nil, beforeDue)
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStatusCancelado, p.PaymentStatus)
		require.NotNil(t, p.PaymentCancellationReason)
		assert.Equal(t, "Cancelado pelo gestor", *p.PaymentCancellationReason)
		require.NotNil(t, p.PaymentCancellationDate)

		require.Len(t, eff.Audits, 1)
		assert.Equal(t, "Pagamento cancelado", eff.Audits[0].Action)
		require.Len(t, eff.Notifies, 2)
		assert.Equal(t, NotifyPaymentCanceled, eff.Notifies[0].Kind)
		assert.Equal(t, NotifyPaymentCanceledManager, eff.Notifies[1].Kind)
		assert.True(t, eff.Notifies[1].ToManager)
		assert.Contains(t, eff.Logs, "Pagamento cancelado e notificações enviadas")
	})

	t.Run("motivo informado é preservado", func(t *testing.T) {
		p := newTestPayment("1000.00", model.PaymentStatusAtrasado)
		reason := "Contrato encerrado"
		_, err := ApplyTransition(p, Event{Type: EventCancel, Reason: &reason}, nil, afterDue)
		require.NoError(t, err)
		assert.Equal(t, reason, *p.PaymentCancellationReason)
	})
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, ev := range []EventType{EventMarkPaid, EventMarkOverdue, EventCancel} {
		p := newTestPayment("1000.00", model.PaymentStatusCancelado)
		_, err := ApplyTransition(p, Event{Type: ev}, nil, afterDue)
		require.Error(t, err, "evento %s sobre cancelado deve falhar", ev)
		assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
		assert.Equal(t, model.PaymentStatusCancelado, p.PaymentStatus)
	}
}

func TestUnknownEvent(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)
	_, err := ApplyTransition(p, Event{Type: EventType("explodir")}, nil, beforeDue)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}
