package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* ===================== Model ===================== */
/* Trilha de auditoria append-only: nunca sofre UPDATE nem DELETE. */

type PaymentHistory struct {
	PaymentHistoryID uuid.UUID `gorm:"column:payment_history_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_history_id"`

	PaymentHistoryPaymentID uuid.UUID `gorm:"column:payment_history_payment_id;type:uuid;not null;index" json:"payment_history_payment_id"`

	// Descrição livre da ação ("Multa aplicada por atraso", "Pagamento cancelado", ...)
	PaymentHistoryAction string `gorm:"column:payment_history_action;not null" json:"payment_history_action"`

	// Snapshots serializados antes/depois da mudança
	PaymentHistoryOldValue datatypes.JSONMap `gorm:"column:payment_history_old_value;type:jsonb" json:"payment_history_old_value,omitempty"`
	PaymentHistoryNewValue datatypes.JSONMap `gorm:"column:payment_history_new_value;type:jsonb" json:"payment_history_new_value,omitempty"`

	PaymentHistoryChangedBy  uuid.UUID `gorm:"column:payment_history_changed_by;type:uuid;not null" json:"payment_history_changed_by"`
	PaymentHistoryChangeDate time.Time `gorm:"column:payment_history_change_date;not null;autoCreateTime" json:"payment_history_change_date"`
}

func (PaymentHistory) TableName() string { return "payment_history" }
