package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	finemodel "rentix_backend/internals/features/finance/fines/model"
	notifsvc "rentix_backend/internals/features/notifications/service"
	"rentix_backend/internals/features/rentals/tenants/dto"
	"rentix_backend/internals/features/rentals/tenants/model"
	helper "rentix_backend/internals/helpers"
)

var validate = validator.New()

type TenantController struct {
	DB     *gorm.DB
	Sender *notifsvc.Sender
}

func NewTenantController(db *gorm.DB, sender *notifsvc.Sender) *TenantController {
	return &TenantController{DB: db, Sender: sender}
}

var tenantSortableColumns = map[string]string{
	"name":       "tenant_name",
	"status":     "tenant_status",
	"join_in":    "tenant_join_in",
	"created_at": "tenant_created_at",
}

// GET /api/m/tenants
func (h *TenantController) GetTenants(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	sortColumn, ok := tenantSortableColumns[p.SortBy]
	if !ok {
		sortColumn = "tenant_created_at"
	}

	q := h.DB.WithContext(c.Context()).Model(&model.Tenant{}).
		Where("tenant_manager_id = ?", managerID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.ValidTenantStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status inválido")
		}
		q = q.Where("tenant_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("tenant_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var tenants []model.Tenant
	if err := q.Order(sortColumn + " " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&tenants).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Inquilinos listados", tenants, helper.BuildMeta(total, p))
}

// GET /api/m/tenants/:id
func (h *TenantController) GetTenantByID(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tenant, ferr := h.findOwnedTenant(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}
	return helper.JsonOK(c, "Inquilino encontrado", tenant)
}

// POST /api/m/tenants
func (h *TenantController) CreateTenant(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	tenant, ferr := req.ToModel(managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if err := h.DB.WithContext(c.Context()).Create(tenant).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um inquilino com este e-mail ou documento")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if tenant.IsAtivo() {
		h.sendWelcome(tenant)
	}
	return helper.JsonCreated(c, "Inquilino criado", tenant)
}

// PATCH /api/m/tenants/:id
// Transição para ativo dispara a mensagem de boas-vindas (best-effort).
func (h *TenantController) UpdateTenant(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "JSON inválido: "+err.Error())
	}

	tenant, ferr := h.findOwnedTenant(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	activated, ferr := req.Apply(tenant)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if err := h.DB.WithContext(c.Context()).Save(tenant).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Já existe um inquilino com este e-mail ou documento")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if activated {
		h.sendWelcome(tenant)
	}
	return helper.JsonUpdated(c, "Inquilino atualizado", tenant)
}

// DELETE /api/m/tenants/:id (soft delete)
func (h *TenantController) DeleteTenant(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	tenant, ferr := h.findOwnedTenant(h.DB.WithContext(c.Context()), c.Params("id"), managerID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	if err := h.DB.WithContext(c.Context()).Delete(tenant).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Inquilino removido", fiber.Map{"tenant_id": tenant.TenantID})
}

/* ===================== Internos ===================== */

func (h *TenantController) findOwnedTenant(db *gorm.DB, rawID string, managerID uuid.UUID) (*model.Tenant, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID de inquilino inválido")
	}

	var tenant model.Tenant
	if err := db.First(&tenant, "tenant_id = ? AND tenant_manager_id = ?", id, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Inquilino não encontrado")
		}
		return nil, err
	}
	return &tenant, nil
}

func (h *TenantController) sendWelcome(tenant *model.Tenant) {
	if h.Sender == nil {
		return
	}
	var settings finemodel.FineSettings
	if err := h.DB.First(&settings, "fine_settings_manager_id = ?", tenant.TenantManagerID).Error; err != nil {
		settings = finemodel.DefaultFineSettings(tenant.TenantManagerID)
	}
	if err := h.Sender.SendWelcome(tenant, &settings); err != nil {
		log.Printf("[TENANT] falha ao enviar boas-vindas para %s: %v", tenant.TenantID, err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
