package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	ManagerStatusAtivo   = "ativo"
	ManagerStatusInativo = "inativo"
)

/* ===================== Model ===================== */

type Manager struct {
	ManagerID uuid.UUID `gorm:"column:manager_id;type:uuid;default:gen_random_uuid();primaryKey" json:"manager_id"`

	ManagerName  string `gorm:"column:manager_name;not null" json:"manager_name"`
	ManagerEmail string `gorm:"column:manager_email;not null;uniqueIndex" json:"manager_email"`
	ManagerPhone string `gorm:"column:manager_phone;not null" json:"manager_phone"`

	// Hash bcrypt; nunca serializado
	ManagerPassword string `gorm:"column:manager_password;not null" json:"-"`

	ManagerStatus string `gorm:"column:manager_status;type:varchar(16);not null;default:'ativo'" json:"manager_status"`

	CreatedAt time.Time      `gorm:"column:manager_created_at;autoCreateTime" json:"manager_created_at"`
	UpdatedAt time.Time      `gorm:"column:manager_updated_at;autoUpdateTime" json:"manager_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:manager_deleted_at;index" json:"manager_deleted_at,omitempty"`
}

func (Manager) TableName() string { return "managers" }

func (m *Manager) IsAtivo() bool { return m.ManagerStatus == ManagerStatusAtivo }
