package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentix_backend/internals/features/rentals/properties/model"
)

/* ===================== Requests ===================== */

type CreatePropertyRequest struct {
	PropertyAddress     string          `json:"property_address" validate:"required,min=5"`
	PropertyType        string          `json:"property_type" validate:"required"`
	PropertyRentAmount  decimal.Decimal `json:"property_rent_amount"`
	PropertyBedrooms    *int            `json:"property_bedrooms,omitempty"`
	PropertyBathrooms   *int            `json:"property_bathrooms,omitempty"`
	PropertyDescription *string         `json:"property_description,omitempty"`
}

func (r *CreatePropertyRequest) ToModel(ownerID uuid.UUID) (*model.Property, error) {
	if !model.ValidPropertyType(r.PropertyType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "property_type inválido")
	}
	if !r.PropertyRentAmount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "property_rent_amount deve ser maior que zero")
	}
	if r.PropertyBedrooms != nil && *r.PropertyBedrooms < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "property_bedrooms não pode ser negativo")
	}
	if r.PropertyBathrooms != nil && *r.PropertyBathrooms < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "property_bathrooms não pode ser negativo")
	}

	return &model.Property{
		PropertyOwnerID:     ownerID,
		PropertyAddress:     strings.TrimSpace(r.PropertyAddress),
		PropertyType:        r.PropertyType,
		PropertyStatus:      model.PropertyStatusDisponivel,
		PropertyRentAmount:  r.PropertyRentAmount.Round(2),
		PropertyBedrooms:    r.PropertyBedrooms,
		PropertyBathrooms:   r.PropertyBathrooms,
		PropertyDescription: r.PropertyDescription,
	}, nil
}

type UpdatePropertyRequest struct {
	PropertyAddress     *string          `json:"property_address,omitempty"`
	PropertyType        *string          `json:"property_type,omitempty"`
	PropertyStatus      *string          `json:"property_status,omitempty"`
	PropertyRentAmount  *decimal.Decimal `json:"property_rent_amount,omitempty"`
	PropertyBedrooms    *int             `json:"property_bedrooms,omitempty"`
	PropertyBathrooms   *int             `json:"property_bathrooms,omitempty"`
	PropertyDescription *string          `json:"property_description,omitempty"`

	// TenantID atribui (uuid) ou libera ("" explícito) o imóvel.
	PropertyTenantID *string `json:"property_tenant_id,omitempty"`
}

func (r *UpdatePropertyRequest) Apply(p *model.Property) error {
	if r.PropertyType != nil {
		if !model.ValidPropertyType(*r.PropertyType) {
			return fiber.NewError(fiber.StatusBadRequest, "property_type inválido")
		}
		p.PropertyType = *r.PropertyType
	}
	if r.PropertyStatus != nil {
		if !model.ValidPropertyStatus(*r.PropertyStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "property_status inválido")
		}
		p.PropertyStatus = *r.PropertyStatus
	}
	if r.PropertyRentAmount != nil {
		if !r.PropertyRentAmount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "property_rent_amount deve ser maior que zero")
		}
		p.PropertyRentAmount = r.PropertyRentAmount.Round(2)
	}
	if r.PropertyAddress != nil {
		p.PropertyAddress = strings.TrimSpace(*r.PropertyAddress)
	}
	if r.PropertyBedrooms != nil {
		p.PropertyBedrooms = r.PropertyBedrooms
	}
	if r.PropertyBathrooms != nil {
		p.PropertyBathrooms = r.PropertyBathrooms
	}
	if r.PropertyDescription != nil {
		p.PropertyDescription = r.PropertyDescription
	}

	if r.PropertyTenantID != nil {
		if strings.TrimSpace(*r.PropertyTenantID) == "" {
			p.PropertyTenantID = nil
			p.PropertyStatus = model.PropertyStatusDisponivel
		} else {
			id, err := uuid.Parse(strings.TrimSpace(*r.PropertyTenantID))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "property_tenant_id inválido")
			}
			p.PropertyTenantID = &id
			p.PropertyStatus = model.PropertyStatusAlugado
		}
	}
	return nil
}
