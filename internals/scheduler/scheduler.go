package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/constants"
	paymentsvc "rentix_backend/internals/features/finance/payments/service"
)

/* ===================== Agendador ===================== */
/* Diário 09:00: detecção de atraso + lembretes + avisos de mudança de status.
   Mensal dia 1 00:00: geração de cobranças + reset do ciclo de multas.
   Schedules sobrescritos por SWEEP_SCHEDULE / RESET_SCHEDULE. */

func Start(db *gorm.DB, notifier paymentsvc.Notifier) *cron.Cron {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	sweepSpec := configs.GetEnv("SWEEP_SCHEDULE", constants.DefaultSweepSchedule)
	resetSpec := configs.GetEnv("RESET_SCHEDULE", constants.DefaultResetSchedule)

	if _, err := c.AddFunc(sweepSpec, func() { runDailySweep(db, notifier) }); err != nil {
		log.Printf("❌ SWEEP_SCHEDULE inválido (%s): %v", sweepSpec, err)
	}
	if _, err := c.AddFunc(resetSpec, func() { runMonthlyCycle(db, notifier) }); err != nil {
		log.Printf("❌ RESET_SCHEDULE inválido (%s): %v", resetSpec, err)
	}

	c.Start()
	log.Printf("⏰ Scheduler iniciado (sweep %q, reset %q)", sweepSpec, resetSpec)
	return c
}

// runDailySweep roda na ordem que os lembretes esperam: primeiro os pendentes
// vencidos viram atrasados, depois as faixas de lembrete, por fim os avisos
// de mudança de status.
func runDailySweep(db *gorm.DB, notifier paymentsvc.Notifier) {
	now := time.Now()
	log.Println("[CRON] varredura diária iniciada")

	flipped := paymentsvc.MarkOverduePayments(db, now)
	res := paymentsvc.SendAllPaymentNotifications(db, notifier, now)
	notices := paymentsvc.CheckStatusChanges(db, notifier, now)

	log.Printf("[CRON] varredura concluída: %d atrasados, %d/%d/%d lembretes, %d avisos",
		flipped, res.Pending, res.Overdue, res.Critical, notices)
}

// runMonthlyCycle reseta o ciclo de multas ANTES de gerar o mês novo, para a
// geração enxergar os pagamentos antigos já reabertos.
func runMonthlyCycle(db *gorm.DB, notifier paymentsvc.Notifier) {
	now := time.Now()
	log.Println("[CRON] ciclo mensal iniciado")

	if _, err := paymentsvc.ResetMonthlyFines(db, now); err != nil {
		log.Printf("[CRON] reset mensal falhou: %v", err)
	}
	res := paymentsvc.GenerateForAllManagers(db, notifier, now)

	log.Printf("[CRON] ciclo mensal concluído: %d cobranças criadas, %d puladas, %d erros",
		res.SuccessCount, res.SkippedCount, res.ErrorCount)
}
