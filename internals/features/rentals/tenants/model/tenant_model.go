package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	TenantStatusAtivo   = "ativo"
	TenantStatusInativo = "inativo"
	TenantStatusExpulso = "expulso"
)

/* ===================== Model ===================== */

type Tenant struct {
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenant_id"`

	TenantManagerID uuid.UUID `gorm:"column:tenant_manager_id;type:uuid;not null;index" json:"tenant_manager_id"`

	TenantName  string `gorm:"column:tenant_name;not null" json:"tenant_name"`
	TenantEmail string `gorm:"column:tenant_email;not null;uniqueIndex" json:"tenant_email"`
	TenantPhone string `gorm:"column:tenant_phone;not null" json:"tenant_phone"`

	// Documento de identificação (BI, CPF, ...)
	TenantBINum string `gorm:"column:tenant_bi_num;not null;uniqueIndex" json:"tenant_bi_num"`

	TenantStatus string `gorm:"column:tenant_status;type:varchar(16);not null;default:'inativo'" json:"tenant_status"`

	TenantJob          *string    `gorm:"column:tenant_job" json:"tenant_job,omitempty"`
	TenantEmergencyNum *string    `gorm:"column:tenant_emergency_num" json:"tenant_emergency_num,omitempty"`
	TenantJoinIn       time.Time  `gorm:"column:tenant_join_in;not null;autoCreateTime" json:"tenant_join_in"`
	TenantLeaveIn      *time.Time `gorm:"column:tenant_leave_in" json:"tenant_leave_in,omitempty"`
	TenantObservation  *string    `gorm:"column:tenant_observation;type:text" json:"tenant_observation,omitempty"`

	CreatedAt time.Time      `gorm:"column:tenant_created_at;autoCreateTime" json:"tenant_created_at"`
	UpdatedAt time.Time      `gorm:"column:tenant_updated_at;autoUpdateTime" json:"tenant_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:tenant_deleted_at;index" json:"tenant_deleted_at,omitempty"`
}

func (Tenant) TableName() string { return "tenants" }

func (t *Tenant) IsAtivo() bool { return t.TenantStatus == TenantStatusAtivo }

func ValidTenantStatus(s string) bool {
	switch s {
	case TenantStatusAtivo, TenantStatusInativo, TenantStatusExpulso:
		return true
	default:
		return false
	}
}
