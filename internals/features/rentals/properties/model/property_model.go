package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PropertyStatusDisponivel   = "disponivel"
	PropertyStatusAlugado      = "alugado"
	PropertyStatusManutencao   = "manutencao"
	PropertyStatusIndisponivel = "indisponivel"
)

const (
	PropertyTypeCasa        = "casa"
	PropertyTypeApartamento = "apartamento"
	PropertyTypeComercial   = "comercial"
	PropertyTypeTerreno     = "terreno"
)

/* ===================== Model ===================== */

type Property struct {
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;default:gen_random_uuid();primaryKey" json:"property_id"`

	PropertyOwnerID  uuid.UUID  `gorm:"column:property_owner_id;type:uuid;not null;index" json:"property_owner_id"`
	PropertyTenantID *uuid.UUID `gorm:"column:property_tenant_id;type:uuid;index" json:"property_tenant_id,omitempty"`

	PropertyAddress string `gorm:"column:property_address;not null" json:"property_address"`
	PropertyType    string `gorm:"column:property_type;type:varchar(16);not null" json:"property_type"`
	PropertyStatus  string `gorm:"column:property_status;type:varchar(16);not null;default:'disponivel'" json:"property_status"`

	// Quartos/banheiros não se aplicam a imóveis comerciais
	PropertyBedrooms  *int `gorm:"column:property_bedrooms;check:property_bedrooms >= 0" json:"property_bedrooms,omitempty"`
	PropertyBathrooms *int `gorm:"column:property_bathrooms;check:property_bathrooms >= 0" json:"property_bathrooms,omitempty"`

	PropertyRentAmount decimal.Decimal `gorm:"column:property_rent_amount;type:numeric(10,2);not null" json:"property_rent_amount"`

	PropertyPhotoURL    *string `gorm:"column:property_photo_url" json:"property_photo_url,omitempty"`
	PropertyDescription *string `gorm:"column:property_description;type:text" json:"property_description,omitempty"`

	CreatedAt time.Time      `gorm:"column:property_created_at;autoCreateTime" json:"property_created_at"`
	UpdatedAt time.Time      `gorm:"column:property_updated_at;autoUpdateTime" json:"property_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:property_deleted_at;index" json:"property_deleted_at,omitempty"`
}

func (Property) TableName() string { return "properties" }

func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusDisponivel, PropertyStatusAlugado, PropertyStatusManutencao, PropertyStatusIndisponivel:
		return true
	default:
		return false
	}
}

func ValidPropertyType(s string) bool {
	switch s {
	case PropertyTypeCasa, PropertyTypeApartamento, PropertyTypeComercial, PropertyTypeTerreno:
		return true
	default:
		return false
	}
}
