package dto

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentix_backend/internals/features/finance/payments/model"
)

func validCreateRequest() CreatePaymentRequest {
	return CreatePaymentRequest{
		PaymentTenantID:       uuid.NewString(),
		PaymentPropertyID:     uuid.NewString(),
		PaymentAmount:         decimal.RequireFromString("1500.00"),
		PaymentReferenceMonth: "2026-08",
	}
}

func TestCreatePaymentRequest_ToModel(t *testing.T) {
	managerID := uuid.New()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		req := validCreateRequest()
		p, err := req.ToModel(managerID, now)
		require.NoError(t, err)

		assert.Equal(t, model.PaymentStatusPendente, p.PaymentStatus)
		assert.False(t, p.PaymentIsLate)
		assert.Equal(t, managerID, p.PaymentManagerID)
		assert.True(t, p.PaymentTotalAmount.Equal(p.PaymentAmount))
		assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), p.PaymentDueDate)
	})

	t.Run("vencimento explícito é respeitado", func(t *testing.T) {
		req := validCreateRequest()
		due := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		req.PaymentDueDate = &due

		p, err := req.ToModel(managerID, now)
		require.NoError(t, err)
		assert.Equal(t, due, p.PaymentDueDate)
	})

	t.Run("mês retroativo nasce atrasado sem multa nova", func(t *testing.T) {
		req := validCreateRequest()
		req.PaymentReferenceMonth = "2026-06"

		p, err := req.ToModel(managerID, now)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusAtrasado, p.PaymentStatus)
		assert.True(t, p.PaymentIsLate, "ciclo de multa fechado para o atraso pré-existente")
		assert.Zero(t, p.PaymentFineCount)
		assert.True(t, p.PaymentTotalAmount.Equal(p.PaymentAmount))
	})

	t.Run("vencimento explícito no passado nasce atrasado", func(t *testing.T) {
		req := validCreateRequest()
		due := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)
		req.PaymentDueDate = &due

		p, err := req.ToModel(managerID, now)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusAtrasado, p.PaymentStatus)
		assert.True(t, p.PaymentIsLate)
	})

	t.Run("rejeições", func(t *testing.T) {
		cases := map[string]func(*CreatePaymentRequest){
			"valor zero":      func(r *CreatePaymentRequest) { r.PaymentAmount = decimal.Zero },
			"valor negativo":  func(r *CreatePaymentRequest) { r.PaymentAmount = decimal.RequireFromString("-10") },
			"mês malformado":  func(r *CreatePaymentRequest) { r.PaymentReferenceMonth = "08/2026" },
			"tenant inválido": func(r *CreatePaymentRequest) { r.PaymentTenantID = "não-uuid" },
			"método inválido": func(r *CreatePaymentRequest) { m := "cheque"; r.PaymentMethod = &m },
		}
		for name, mutate := range cases {
			req := validCreateRequest()
			mutate(&req)
			_, err := req.ToModel(managerID, now)
			require.Error(t, err, name)
			fe, ok := err.(*fiber.Error)
			require.True(t, ok, name)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code, name)
		}
	})
}

func TestUpdatePaymentRequest_HasChanges(t *testing.T) {
	method := model.PaymentMethodPix
	desc := "aluguel de agosto"
	p := &model.Payment{
		PaymentStatus:      model.PaymentStatusPendente,
		PaymentMethod:      &method,
		PaymentDescription: &desc,
	}

	assert.False(t, (&UpdatePaymentRequest{}).HasChanges(p), "patch vazio é no-op")

	sameMethod := model.PaymentMethodPix
	sameDesc := "aluguel de agosto"
	sameStatus := model.PaymentStatusPendente
	assert.False(t, (&UpdatePaymentRequest{
		PaymentStatus:      &sameStatus,
		PaymentMethod:      &sameMethod,
		PaymentDescription: &sameDesc,
	}).HasChanges(p), "valores idênticos são no-op")

	newStatus := model.PaymentStatusPago
	assert.True(t, (&UpdatePaymentRequest{PaymentStatus: &newStatus}).HasChanges(p))

	newMethod := model.PaymentMethodCartao
	assert.True(t, (&UpdatePaymentRequest{PaymentMethod: &newMethod}).HasChanges(p))
}
