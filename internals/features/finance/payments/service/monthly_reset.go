package service

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/features/finance/payments/model"
	helper "rentix_backend/internals/helpers"
)

/* ===================== Reset mensal de multas ===================== */

// ResetMonthlyFines abre o novo ciclo de cobrança: todo pagamento aberto
// (pendente/atrasado) de meses anteriores volta para pendente com o ciclo de
// multa liberado (is_late = false). Transação única: ou reseta tudo ou nada.
//
// Política de perdão via FINE_RESET_FORGIVES (default "true"):
//   - true:  multas acumuladas são zeradas (total volta ao aluguel);
//   - false: as multas são carregadas para o novo ciclo; só o guard de
//     aplicação é liberado, permitindo nova multa no mês seguinte.
func ResetMonthlyFines(db *gorm.DB, now time.Time) (int64, error) {
	currentMonth := helper.ReferenceMonthOf(now)
	forgive := fineResetForgives()

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Payment{}).
			Where("payment_status IN ?", []string{model.PaymentStatusPendente, model.PaymentStatusAtrasado}).
			Where("payment_reference_month <> ?", currentMonth)

		updates := map[string]any{
			"payment_status":  model.PaymentStatusPendente,
			"payment_is_late": false,
		}
		if forgive {
			updates["payment_fine_amount"] = decimal.Zero
			updates["payment_total_amount"] = gorm.Expr("payment_amount")
		}

		result := q.Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		log.Printf("[RESET] erro no reset mensal de multas: %v", err)
		return 0, err
	}

	log.Printf("[RESET] %d pagamentos reabertos para o ciclo %s (perdão de multas: %v)",
		affected, currentMonth, forgive)
	return affected, nil
}

func fineResetForgives() bool {
	v := strings.ToLower(configs.GetEnv("FINE_RESET_FORGIVES", "true"))
	return v != "false" && v != "0"
}
