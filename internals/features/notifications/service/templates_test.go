package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	paymentmodel "rentix_backend/internals/features/finance/payments/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

func templateFixtures() (*paymentmodel.Payment, *tenantmodel.Tenant, *authmodel.Manager) {
	p := &paymentmodel.Payment{
		PaymentID:             uuid.New(),
		PaymentAmount:         decimal.RequireFromString("1200.00"),
		PaymentFineAmount:     decimal.RequireFromString("36.00"),
		PaymentTotalAmount:    decimal.RequireFromString("1236.00"),
		PaymentFineCount:      1,
		PaymentStatus:         paymentmodel.PaymentStatusAtrasado,
		PaymentDueDate:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		PaymentReferenceMonth: "2026-08",
	}
	tenant := &tenantmodel.Tenant{TenantName: "João Silva", TenantEmail: "joao@example.com"}
	manager := &authmodel.Manager{ManagerName: "Maria Gestora", ManagerEmail: "maria@example.com"}
	return p, tenant, manager
}

func TestRenderPayment_AllKindsResolve(t *testing.T) {
	p, tenant, manager := templateFixtures()

	kinds := []string{
		"payment_created", "payment_created_manager",
		"payment_paid", "payment_overdue",
		"payment_canceled", "payment_canceled_manager",
		"reminder_pending", "reminder_overdue", "reminder_critical",
		"critical_manager",
	}
	for _, kind := range kinds {
		msg, ok := RenderPayment(kind, p, tenant, manager)
		require.True(t, ok, "template %s não resolveu", kind)
		assert.NotEmpty(t, msg.Subject, kind)
		assert.NotEmpty(t, msg.HTML, kind)
		assert.NotEmpty(t, msg.SMS, kind)
	}
}

func TestRenderPayment_UnknownKind(t *testing.T) {
	p, tenant, manager := templateFixtures()
	_, ok := RenderPayment("algo_inexistente", p, tenant, manager)
	assert.False(t, ok)
}

func TestRenderPayment_OverdueIncludesFine(t *testing.T) {
	p, tenant, manager := templateFixtures()

	msg, ok := RenderPayment("payment_overdue", p, tenant, manager)
	require.True(t, ok)
	assert.Contains(t, msg.HTML, "R$ 36.00")
	assert.Contains(t, msg.HTML, "R$ 1236.00")
	assert.Contains(t, msg.SMS, "2026-08")
}

func TestRenderPayment_CanceledUsesReason(t *testing.T) {
	p, tenant, manager := templateFixtures()
	reason := "Contrato encerrado"
	p.PaymentCancellationReason = &reason

	msg, ok := RenderPayment("payment_canceled", p, tenant, manager)
	require.True(t, ok)
	assert.Contains(t, msg.HTML, reason)

	p.PaymentCancellationReason = nil
	msg, _ = RenderPayment("payment_canceled", p, tenant, manager)
	assert.Contains(t, msg.HTML, paymentmodel.DefaultCancellationReason)
}

func TestRenderWelcome_FillsPlaceholders(t *testing.T) {
	settings := finemodel.DefaultFineSettings(uuid.New())
	settings.FineSettingsFinePercentage = decimal.RequireFromString("0.05")
	settings.FineSettingsMaxFinesBeforeWarning = 4

	msg := RenderWelcome(&settings, "João Silva")

	assert.Contains(t, msg.HTML, "João Silva")
	assert.Contains(t, msg.HTML, "5%")
	assert.Contains(t, msg.HTML, "4 ocorrências")
	assert.NotContains(t, msg.HTML, "{nome_do_inquilino}")
	assert.NotContains(t, msg.HTML, "{porcentagem_da_multa}")
	assert.NotContains(t, msg.HTML, "{max_fines_before_warning}")
}

func TestRenderWelcome_EmptyTemplateFallsBack(t *testing.T) {
	settings := finemodel.DefaultFineSettings(uuid.New())
	settings.FineSettingsWelcomeMessage = "   "

	msg := RenderWelcome(&settings, "Ana")
	assert.Contains(t, msg.HTML, "Ana")
	assert.Contains(t, msg.HTML, "Equipe Rentix")
}
