package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	paymentmodel "rentix_backend/internals/features/finance/payments/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

/* ===================== Templates (pt-BR) ===================== */
/* Um template por tipo de notificação: assunto + HTML + texto curto (SMS). */

type Message struct {
	Subject string
	HTML    string
	SMS     string
}

const dateLayout = "02/01/2006"

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func wrap(title, body string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h2 style="color: #2c3e50;">%s</h2>
  %s
  <p style="font-weight: bold; color: #2c3e50;">Equipe Rentix</p>
</div>`, title, body)
}

// RenderPayment monta a mensagem de um tipo de notificação de pagamento.
// Tipo desconhecido devolve ok=false e o chamador loga e segue.
func RenderPayment(kind string, p *paymentmodel.Payment, tenant *tenantmodel.Tenant, manager *authmodel.Manager) (Message, bool) {
	due := p.PaymentDueDate.Format(dateLayout)
	total := money(p.PaymentTotalAmount)

	switch kind {
	case "payment_created":
		return Message{
			Subject: "Novo aluguel gerado - " + p.PaymentReferenceMonth,
			HTML: wrap("Olá, "+tenant.TenantName+"!", fmt.Sprintf(
				`<p>O aluguel de <strong>%s</strong> foi gerado.</p>
<p>Valor: <strong>%s</strong>, vencimento em <strong>%s</strong>.</p>`,
				p.PaymentReferenceMonth, total, due)),
			SMS: fmt.Sprintf("Rentix: aluguel de %s gerado. Valor %s, vence em %s.", p.PaymentReferenceMonth, total, due),
		}, true

	case "payment_created_manager":
		return Message{
			Subject: "Cobrança gerada para " + tenant.TenantName,
			HTML: wrap("Olá, "+manager.ManagerName+"!", fmt.Sprintf(
				`<p>A cobrança de <strong>%s</strong> do inquilino <strong>%s</strong> foi gerada (%s, vencimento %s).</p>`,
				p.PaymentReferenceMonth, tenant.TenantName, total, due)),
			SMS: fmt.Sprintf("Rentix: cobrança de %s gerada para %s (%s).", p.PaymentReferenceMonth, tenant.TenantName, total),
		}, true

	case "payment_paid":
		return Message{
			Subject: "Pagamento confirmado - " + p.PaymentReferenceMonth,
			HTML: wrap("Obrigado, "+tenant.TenantName+"!", fmt.Sprintf(
				`<p>Recebemos o pagamento de <strong>%s</strong> referente a <strong>%s</strong>.</p>`,
				total, p.PaymentReferenceMonth)),
			SMS: fmt.Sprintf("Rentix: pagamento de %s (%s) confirmado. Obrigado!", total, p.PaymentReferenceMonth),
		}, true

	case "payment_overdue":
		body := fmt.Sprintf(`<p>O aluguel de <strong>%s</strong> venceu em <strong>%s</strong> e está atrasado.</p>`,
			p.PaymentReferenceMonth, due)
		if p.PaymentFineCount > 0 {
			body += fmt.Sprintf(`<p>Multa aplicada: <strong>%s</strong>. Total atualizado: <strong>%s</strong>.</p>`,
				money(p.PaymentFineAmount), total)
		}
		return Message{
			Subject: "Pagamento em atraso - " + p.PaymentReferenceMonth,
			HTML:    wrap("Atenção, "+tenant.TenantName, body),
			SMS:     fmt.Sprintf("Rentix: aluguel de %s em atraso. Total %s.", p.PaymentReferenceMonth, total),
		}, true

	case "payment_canceled":
		reason := paymentmodel.DefaultCancellationReason
		if p.PaymentCancellationReason != nil && *p.PaymentCancellationReason != "" {
			reason = *p.PaymentCancellationReason
		}
		return Message{
			Subject: "Cobrança cancelada - " + p.PaymentReferenceMonth,
			HTML: wrap("Olá, "+tenant.TenantName, fmt.Sprintf(
				`<p>A cobrança de <strong>%s</strong> foi cancelada.</p><p>Motivo: %s</p>`,
				p.PaymentReferenceMonth, reason)),
			SMS: fmt.Sprintf("Rentix: cobrança de %s cancelada. Motivo: %s", p.PaymentReferenceMonth, reason),
		}, true

	case "payment_canceled_manager":
		return Message{
			Subject: "Cobrança cancelada - " + tenant.TenantName,
			HTML: wrap("Olá, "+manager.ManagerName, fmt.Sprintf(
				`<p>A cobrança de <strong>%s</strong> do inquilino <strong>%s</strong> foi cancelada.</p>`,
				p.PaymentReferenceMonth, tenant.TenantName)),
			SMS: fmt.Sprintf("Rentix: cobrança de %s de %s cancelada.", p.PaymentReferenceMonth, tenant.TenantName),
		}, true

	case "reminder_pending":
		return Message{
			Subject: "Lembrete: aluguel vence em breve",
			HTML: wrap("Olá, "+tenant.TenantName+"!", fmt.Sprintf(
				`<p>O aluguel de <strong>%s</strong> (%s) vence em <strong>%s</strong>.</p>
<p>Pague em dia e evite multas.</p>`,
				p.PaymentReferenceMonth, total, due)),
			SMS: fmt.Sprintf("Rentix: aluguel de %s (%s) vence em %s.", p.PaymentReferenceMonth, total, due),
		}, true

	case "reminder_overdue":
		return Message{
			Subject: "Aluguel em atraso: regularize seu pagamento",
			HTML: wrap("Atenção, "+tenant.TenantName, fmt.Sprintf(
				`<p>O aluguel de <strong>%s</strong> venceu em <strong>%s</strong>.</p>
<p>Total com multa: <strong>%s</strong>. Regularize o quanto antes.</p>`,
				p.PaymentReferenceMonth, due, total)),
			SMS: fmt.Sprintf("Rentix: aluguel de %s vencido em %s. Total %s.", p.PaymentReferenceMonth, due, total),
		}, true

	case "reminder_critical":
		return Message{
			Subject: "URGENTE: aluguel em atraso prolongado",
			HTML: wrap("Atenção, "+tenant.TenantName, fmt.Sprintf(
				`<p>O aluguel de <strong>%s</strong> está em atraso há mais de uma semana.</p>
<p>Total devido: <strong>%s</strong> (%d multa(s) aplicada(s)).</p>
<p>O não pagamento pode resultar em advertência formal.</p>`,
				p.PaymentReferenceMonth, total, p.PaymentFineCount)),
			SMS: fmt.Sprintf("Rentix URGENTE: aluguel de %s em atraso prolongado. Total %s.", p.PaymentReferenceMonth, total),
		}, true

	case "critical_manager":
		return Message{
			Subject: "Inadimplência crítica - " + tenant.TenantName,
			HTML: wrap("Olá, "+manager.ManagerName, fmt.Sprintf(
				`<p>O inquilino <strong>%s</strong> está com o aluguel de <strong>%s</strong> em atraso crítico.</p>
<p>Total devido: <strong>%s</strong>, %d notificação(ões) já enviada(s).</p>`,
				tenant.TenantName, p.PaymentReferenceMonth, total, p.PaymentNotificationCount)),
			SMS: fmt.Sprintf("Rentix: %s em atraso crítico (%s, total %s).", tenant.TenantName, p.PaymentReferenceMonth, total),
		}, true
	}

	return Message{}, false
}

// RenderWelcome preenche o template de boas-vindas das configurações do gestor.
func RenderWelcome(settings *finemodel.FineSettings, tenantName string) Message {
	tpl := settings.FineSettingsWelcomeMessage
	if strings.TrimSpace(tpl) == "" {
		tpl = finemodel.DefaultWelcomeMessage
	}

	pct := settings.FineSettingsFinePercentage.Mul(decimal.NewFromInt(100))
	r := strings.NewReplacer(
		"{nome_do_inquilino}", tenantName,
		"{porcentagem_da_multa}", pct.StringFixed(0),
		"{max_fines_before_warning}", fmt.Sprintf("%d", settings.FineSettingsMaxFinesBeforeWarning),
	)

	return Message{
		Subject: "Bem-vindo(a) à Rentix!",
		HTML:    r.Replace(tpl),
		SMS:     fmt.Sprintf("Rentix: bem-vindo(a), %s! Seu cadastro está ativo.", tenantName),
	}
}
