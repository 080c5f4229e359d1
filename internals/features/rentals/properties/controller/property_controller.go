package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/features/rentals/properties/dto"
	"rentix_backend/internals/features/rentals/properties/model"
	tenantmodel "rentix_backend/internals/features/rentals/tenants/model"
	helper "rentix_backend/internals/helpers"
)

var validate = validator.New()

type PropertyController struct {
	DB *gorm.DB
}

func NewPropertyController(db *gorm.DB) *PropertyController {
	return &PropertyController{DB: db}
}

var propertySortableColumns = map[string]string{
	"address":     "property_address",
	"status":      "property_status",
	"rent_amount": "property_rent_amount",
	"created_at":  "property_created_at",
}

// GET /api/m/properties
func (h *PropertyController) GetProperties(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	sortColumn, ok := propertySortableColumns[p.SortBy]
	if !ok {
		sortColumn = "property_created_at"
	}

	q := h.DB.WithContext(c.Context()).Model(&model.Property{}).
		Where("property_owner_id = ?", managerID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.ValidPropertyStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status inválido")
		}
		q = q.Where("property_status = ?", status)
	}
	if ptype := strings.TrimSpace(c.Query("type")); ptype != "" {
		if !model.ValidPropertyType(ptype) {
			return helper.JsonError(c, fiber.StatusBadRequest, "type inválido")
		}
		q = q.Where("property_type = ?", ptype)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var properties []model.Property
	if err := q.Order(sortColumn + " " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&properties).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Imóveis listados", properties, helper.BuildMeta(total, p))
}

// GET /api/m/properties/:id
func (h *PropertyController) GetPropertyByID(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	property, ferr := h.findOwnedProperty(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "Imóvel encontrado", property)
}

// POST /api/m/properties
func (h *PropertyController) CreateProperty(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	property, ferr := req.ToModel(managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if err := h.DB.WithContext(c.Context()).Create(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Imóvel criado", property)
}

// PATCH /api/m/properties/:id
// Atribuição de inquilino valida posse do inquilino e muda o status do imóvel.
func (h *PropertyController) UpdateProperty(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}

	property, ferr := h.findOwnedProperty(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if ferr := req.Apply(property); ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if property.PropertyTenantID != nil {
		var tenant tenantmodel.Tenant
		if err := h.DB.WithContext(c.Context()).
			First(&tenant, "tenant_id = ? AND tenant_manager_id = ?",
				*property.PropertyTenantID, managerID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusNotFound, "Inquilino não encontrado para este gestor")
		}
	}

	if err := h.DB.WithContext(c.Context()).Save(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Imóvel atualizado", property)
}

// POST /api/m/properties/:id/photo
// Multipart "photo": converte para webp (máx 1280px) e grava em disco local.
func (h *PropertyController) UploadPropertyPhoto(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	property, ferr := h.findOwnedProperty(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Arquivo 'photo' não enviado")
	}

	destDir := configs.GetEnv("UPLOAD_DIR", "./uploads/properties")
	path, err := helper.SaveImageAsWebp(fileHeader, destDir)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	property.PropertyPhotoURL = &path
	if err := h.DB.WithContext(c.Context()).Save(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Foto do imóvel atualizada", property)
}

// DELETE /api/m/properties/:id (soft delete)
func (h *PropertyController) DeleteProperty(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	property, ferr := h.findOwnedProperty(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	if property.PropertyTenantID != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Imóvel ocupado não pode ser removido")
	}

	if err := h.DB.WithContext(c.Context()).Delete(property).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Imóvel removido", fiber.Map{"property_id": property.PropertyID})
}

/* ===================== Internos ===================== */

func (h *PropertyController) findOwnedProperty(db *gorm.DB, rawID string, managerID uuid.UUID) (*model.Property, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID de imóvel inválido")
	}

	var property model.Property
	if err := db.First(&property, "property_id = ? AND property_owner_id = ?", id, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Imóvel não encontrado")
		}
		return nil, err
	}
	return &property, nil
}
