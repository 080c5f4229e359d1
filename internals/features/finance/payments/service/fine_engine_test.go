package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	"rentix_backend/internals/features/finance/payments/model"
)

func newTestPayment(amount string, status string) *model.Payment {
	amt := decimal.RequireFromString(amount)
	return &model.Payment{
		PaymentID:             uuid.New(),
		PaymentTenantID:       uuid.New(),
		PaymentPropertyID:     uuid.New(),
		PaymentManagerID:      uuid.New(),
		PaymentAmount:         amt,
		PaymentTotalAmount:    amt,
		PaymentStatus:         status,
		PaymentDueDate:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		PaymentReferenceMonth: "2026-08",
	}
}

func newTestSettings(pct string) *finemodel.FineSettings {
	s := finemodel.DefaultFineSettings(uuid.New())
	s.FineSettingsFinePercentage = decimal.RequireFromString(pct)
	return &s
}

func TestApplyLateFine_BasicMath(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	app := ApplyLateFine(p, newTestSettings("0.03"), now)
	require.NotNil(t, app)

	assert.True(t, p.PaymentFineAmount.Equal(decimal.RequireFromString("30.00")),
		"multa de 3%% sobre 1000 deve ser 30.00, veio %s", p.PaymentFineAmount)
	assert.True(t, p.PaymentTotalAmount.Equal(decimal.RequireFromString("1030.00")))
	assert.Equal(t, 1, p.PaymentFineCount)
	assert.True(t, p.PaymentIsLate)
	require.NotNil(t, p.PaymentLastFineApplied)
	assert.Equal(t, now, *p.PaymentLastFineApplied)
}

func TestApplyLateFine_Rounding(t *testing.T) {
	// 833.33 * 0.03 = 24.9999 → 25.00
	p := newTestPayment("833.33", model.PaymentStatusPendente)
	app := ApplyLateFine(p, newTestSettings("0.03"), time.Now())
	require.NotNil(t, app)
	assert.True(t, p.PaymentFineAmount.Equal(decimal.RequireFromString("25.00")),
		"esperava 25.00, veio %s", p.PaymentFineAmount)
}

func TestApplyLateFine_NoSettingsIsNoop(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)

	assert.Nil(t, ApplyLateFine(p, nil, time.Now()))
	assert.Nil(t, ApplyLateFine(p, newTestSettings("0"), time.Now()))
	assert.Nil(t, ApplyLateFine(p, newTestSettings("-0.05"), time.Now()))

	assert.True(t, p.PaymentFineAmount.IsZero())
	assert.Equal(t, 0, p.PaymentFineCount)
	assert.False(t, p.PaymentIsLate)
}

func TestApplyLateFine_CycleGuardBlocksSecondFine(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)
	settings := newTestSettings("0.03")

	require.NotNil(t, ApplyLateFine(p, settings, time.Now()))
	assert.Nil(t, ApplyLateFine(p, settings, time.Now()), "segunda multa no mesmo ciclo deve ser bloqueada")

	assert.Equal(t, 1, p.PaymentFineCount)
	assert.True(t, p.PaymentFineAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestApplyLateFine_GuardClearedAllowsNewCycle(t *testing.T) {
	p := newTestPayment("1000.00", model.PaymentStatusPendente)
	settings := newTestSettings("0.03")

	require.NotNil(t, ApplyLateFine(p, settings, time.Now()))

	// Reset mensal libera o guard sem zerar o contador histórico.
	p.PaymentIsLate = false

	require.NotNil(t, ApplyLateFine(p, settings, time.Now()))
	assert.Equal(t, 2, p.PaymentFineCount)
}

func TestNormalizeAmounts(t *testing.T) {
	p := newTestPayment("500.00", model.PaymentStatusPendente)
	p.PaymentFineAmount = decimal.RequireFromString("-10.00")

	NormalizeAmounts(p)
	assert.True(t, p.PaymentFineAmount.IsZero())
	assert.True(t, p.PaymentTotalAmount.Equal(p.PaymentAmount))

	p.PaymentFineAmount = decimal.RequireFromString("15.00")
	NormalizeAmounts(p)
	assert.True(t, p.PaymentTotalAmount.Equal(decimal.RequireFromString("515.00")))
}
