package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Alinhado com os CHECKs no PostgreSQL: payment_status, payment_method */

const (
	PaymentStatusPendente  = "pendente"
	PaymentStatusPago      = "pago"
	PaymentStatusAtrasado  = "atrasado"
	PaymentStatusCancelado = "cancelado"
)

const (
	PaymentMethodPix           = "pix"
	PaymentMethodTransferencia = "transferencia"
	PaymentMethodDinheiro      = "dinheiro"
	PaymentMethodCartao        = "cartao"
)

// DefaultCancellationReason é usada quando o gestor cancela sem informar motivo.
const DefaultCancellationReason = "Cancelado pelo gestor"

/* ===================== Model ===================== */

type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentTenantID   uuid.UUID `gorm:"column:payment_tenant_id;type:uuid;not null;index" json:"payment_tenant_id"`
	PaymentPropertyID uuid.UUID `gorm:"column:payment_property_id;type:uuid;not null" json:"payment_property_id"`
	PaymentManagerID  uuid.UUID `gorm:"column:payment_manager_id;type:uuid;not null;index" json:"payment_manager_id"`

	// Valores (aluguel + multa)
	PaymentAmount      decimal.Decimal `gorm:"column:payment_amount;type:numeric(10,2);not null" json:"payment_amount"`
	PaymentFineAmount  decimal.Decimal `gorm:"column:payment_fine_amount;type:numeric(10,2);not null;default:0" json:"payment_fine_amount"`
	PaymentTotalAmount decimal.Decimal `gorm:"column:payment_total_amount;type:numeric(10,2);not null;default:0" json:"payment_total_amount"`
	PaymentFineCount   int             `gorm:"column:payment_fine_count;not null;default:0;check:payment_fine_count >= 0" json:"payment_fine_count"`

	// Status & método
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(16);not null;default:'pendente'" json:"payment_status"`
	PaymentMethod *string `gorm:"column:payment_method;type:varchar(16)" json:"payment_method,omitempty"`

	// Datas do ciclo de vida
	PaymentDueDate          time.Time  `gorm:"column:payment_due_date;not null" json:"payment_due_date"`
	PaymentDate             *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`
	PaymentStatusChangedAt  *time.Time `gorm:"column:payment_status_changed_at" json:"payment_status_changed_at,omitempty"`
	PaymentLastFineApplied  *time.Time `gorm:"column:payment_last_fine_applied" json:"payment_last_fine_applied,omitempty"`
	PaymentCancellationDate *time.Time `gorm:"column:payment_cancellation_date" json:"payment_cancellation_date,omitempty"`

	// Controle de notificações (dedup fica aqui, não no NotificationLog)
	PaymentNotificationCount    int        `gorm:"column:payment_notification_count;not null;default:0;check:payment_notification_count >= 0" json:"payment_notification_count"`
	PaymentLastNotificationSent *time.Time `gorm:"column:payment_last_notification_sent" json:"payment_last_notification_sent,omitempty"`

	// Referência "YYYY-MM" do mês de cobrança
	PaymentReferenceMonth string `gorm:"column:payment_reference_month;type:varchar(7);not null;index" json:"payment_reference_month"`

	// Marca que a multa do ciclo atual já foi aplicada (zerada no reset mensal)
	PaymentIsLate bool `gorm:"column:payment_is_late;not null;default:false" json:"payment_is_late"`

	PaymentCancellationReason *string `gorm:"column:payment_cancellation_reason" json:"payment_cancellation_reason,omitempty"`
	PaymentDescription        *string `gorm:"column:payment_description;type:text" json:"payment_description,omitempty"`

	// Base timestamps
	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *Payment) IsCancelado() bool {
	return p.PaymentStatus == PaymentStatusCancelado
}

func (p *Payment) IsOpen() bool {
	switch p.PaymentStatus {
	case PaymentStatusPendente, PaymentStatusAtrasado:
		return true
	default:
		return false
	}
}

// PastDue indica vencimento ultrapassado (independente do status).
func (p *Payment) PastDue(now time.Time) bool {
	return now.After(p.PaymentDueDate)
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPendente, PaymentStatusPago, PaymentStatusAtrasado, PaymentStatusCancelado:
		return true
	default:
		return false
	}
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodPix, PaymentMethodTransferencia, PaymentMethodDinheiro, PaymentMethodCartao:
		return true
	default:
		return false
	}
}
