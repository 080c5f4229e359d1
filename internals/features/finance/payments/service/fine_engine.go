package service

import (
	"time"

	"github.com/shopspring/decimal"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	"rentix_backend/internals/features/finance/payments/model"
)

/* ===================== Fine Engine ===================== */
/* Função pura de (payment, settings): calcula a multa por atraso e atualiza
   os totais. Sem I/O: o chamador persiste e registra os efeitos. */

// FineApplication descreve uma multa aplicada (para auditoria).
type FineApplication struct {
	OldStatus     string
	OldFineAmount decimal.Decimal
	FineAmount    decimal.Decimal
	FineCount     int
}

// ApplyLateFine aplica a multa do ciclo atual de atraso sobre o pagamento.
// Devolve nil (no-op) quando:
//   - não há FineSettings para o gestor ou o percentual é <= 0;
//   - a multa deste ciclo já foi aplicada (payment_is_late), o que impede cobrança
//     dupla quando um atrasado é marcado como pago depois.
//
// A ausência de settings nunca bloqueia a transição de status.
func ApplyLateFine(p *model.Payment, settings *finemodel.FineSettings, now time.Time) *FineApplication {
	if settings == nil || !settings.FineSettingsFinePercentage.IsPositive() {
		return nil
	}
	if p.PaymentIsLate {
		return nil
	}

	app := &FineApplication{
		OldStatus:     p.PaymentStatus,
		OldFineAmount: p.PaymentFineAmount,
	}

	fine := p.PaymentAmount.Mul(settings.FineSettingsFinePercentage).Round(2)
	p.PaymentFineAmount = fine
	p.PaymentTotalAmount = p.PaymentAmount.Add(fine).Round(2)
	p.PaymentFineCount++
	p.PaymentLastFineApplied = &now
	p.PaymentIsLate = true

	app.FineAmount = fine
	app.FineCount = p.PaymentFineCount
	return app
}

// NormalizeAmounts garante os invariantes de valores antes de qualquer save:
// fine_amount >= 0 e total_amount = amount + fine_amount (>= amount).
func NormalizeAmounts(p *model.Payment) {
	if p.PaymentFineAmount.IsNegative() {
		p.PaymentFineAmount = decimal.Zero
	}
	p.PaymentTotalAmount = p.PaymentAmount.Add(p.PaymentFineAmount).Round(2)
}
