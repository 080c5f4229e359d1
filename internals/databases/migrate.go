package database

import (
	"log"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	paymentmodel "rentix_backend/internals/features/finance/payments/model"
	notifmodel "rentix_backend/internals/features/notifications/model"
	propertymodel "rentix_backend/internals/features/rentals/properties/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	authmodel "rentix_backend/internals/features/users/auth/model"
)

// Migrate cria/ajusta o schema e o índice parcial de unicidade que o GORM
// não expressa por tag: um pagamento não-cancelado por (inquilino, mês, gestor).
func Migrate() {
	if err := DB.AutoMigrate(
		&authmodel.Manager{},
		&authmodel.TokenBlacklist{},
		&tenantmodel.Tenant{},
		&propertymodel.Property{},
		&finemodel.FineSettings{},
		&paymentmodel.Payment{},
		&paymentmodel.PaymentHistory{},
		&notifmodel.NotificationLog{},
	); err != nil {
		log.Fatalf("❌ Migração falhou: %v", err)
	}

	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_payments_open_tenant_month
		ON payments (payment_tenant_id, payment_reference_month, payment_manager_id)
		WHERE payment_status <> 'cancelado' AND payment_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ Índice de unicidade falhou: %v", err)
	}

	log.Println("✅ Migrações aplicadas.")
}
