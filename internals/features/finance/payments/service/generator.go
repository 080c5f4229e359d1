package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentix_backend/internals/features/finance/payments/model"
	propertymodel "rentix_backend/internals/features/rentals/properties/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
	helper "rentix_backend/internals/helpers"
)

/* ===================== Geração mensal ===================== */

type GenerationResult struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
	SkippedCount int `json:"skipped_count"`
}

// GenerateMonthlyPayments cria a cobrança do mês corrente para cada inquilino
// ativo do gestor que ocupa um imóvel. Idempotente: quem já tem pagamento
// não-cancelado no mês de referência é pulado. Uma transação POR inquilino:
// falha individual conta no ErrorCount e não derruba o lote.
func GenerateMonthlyPayments(db *gorm.DB, notifier Notifier, managerID uuid.UUID, now time.Time) (GenerationResult, error) {
	var res GenerationResult

	referenceMonth := helper.ReferenceMonthOf(now)
	dueDate, err := helper.DueDateFor(referenceMonth)
	if err != nil {
		return res, err
	}

	var tenants []tenantmodel.Tenant
	if err := db.
		Where("tenant_manager_id = ? AND tenant_status = ?", managerID, tenantmodel.TenantStatusAtivo).
		Find(&tenants).Error; err != nil {
		return res, fmt.Errorf("erro ao listar inquilinos do gestor %s: %w", managerID, err)
	}

	for i := range tenants {
		tenant := &tenants[i]

		created, err := generateForTenant(db, tenant, managerID, referenceMonth, dueDate)
		if err != nil {
			res.ErrorCount++
			log.Printf("[GENERATOR] inquilino %s (%s): %v", tenant.TenantID, referenceMonth, err)
			continue
		}
		if created == nil {
			res.SkippedCount++
			continue
		}

		res.SuccessCount++
		DispatchEffects(db, notifier, created, Effects{
			Notifies: []NotifyEffect{
				{Kind: NotifyPaymentCreated},
				{Kind: NotifyPaymentCreatedManager, ToManager: true},
			},
		})
	}

	log.Printf("[GENERATOR] gestor %s %s: %d criados, %d pulados, %d erros",
		managerID, referenceMonth, res.SuccessCount, res.SkippedCount, res.ErrorCount)
	return res, nil
}

// generateForTenant devolve (nil, nil) quando nada precisa ser criado:
// inquilino sem imóvel ou cobrança do mês já existente.
func generateForTenant(db *gorm.DB, tenant *tenantmodel.Tenant, managerID uuid.UUID, referenceMonth string, dueDate time.Time) (*model.Payment, error) {
	var property propertymodel.Property
	err := db.First(&property, "property_tenant_id = ?", tenant.TenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // sem imóvel, sem cobrança
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar imóvel: %w", err)
	}

	var created *model.Payment
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Payment{}).
			Where("payment_tenant_id = ? AND payment_reference_month = ? AND payment_manager_id = ? AND payment_status <> ?",
				tenant.TenantID, referenceMonth, managerID, model.PaymentStatusCancelado).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil // já cobrado neste mês
		}

		p := model.Payment{
			PaymentTenantID:       tenant.TenantID,
			PaymentPropertyID:     property.PropertyID,
			PaymentManagerID:      managerID,
			PaymentAmount:         property.PropertyRentAmount,
			PaymentTotalAmount:    property.PropertyRentAmount,
			PaymentStatus:         model.PaymentStatusPendente,
			PaymentDueDate:        dueDate,
			PaymentReferenceMonth: referenceMonth,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		created = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GenerateForAllManagers roda a geração para todos os gestores ativos
// (entrada do cron mensal). Agrega os contadores por gestor.
func GenerateForAllManagers(db *gorm.DB, notifier Notifier, now time.Time) GenerationResult {
	var total GenerationResult

	var managerIDs []uuid.UUID
	if err := db.Model(&authmodel.Manager{}).
		Where("manager_status = ?", authmodel.ManagerStatusAtivo).
		Pluck("manager_id", &managerIDs).Error; err != nil {
		log.Printf("[GENERATOR] erro ao listar gestores: %v", err)
		return total
	}

	for _, id := range managerIDs {
		res, err := GenerateMonthlyPayments(db, notifier, id, now)
		if err != nil {
			total.ErrorCount++
			log.Printf("[GENERATOR] gestor %s: %v", id, err)
			continue
		}
		total.SuccessCount += res.SuccessCount
		total.ErrorCount += res.ErrorCount
		total.SkippedCount += res.SkippedCount
	}
	return total
}
