package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"rentix_backend/internals/features/notifications/model"
	helper "rentix_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GET /api/m/notifications
// Trilha de envios do gestor; filtro opcional por inquilino.
func (h *NotificationController) GetNotificationLogs(c *fiber.Ctx) error {
	managerID, err := helper.GetManagerIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "sent_at", "desc", helper.DefaultOpts)

	q := h.DB.WithContext(c.Context()).Model(&model.NotificationLog{}).
		Where("notification_log_manager_id = ?", managerID)

	if tenantID := strings.TrimSpace(c.Query("tenant_id")); tenantID != "" {
		id, err := uuid.Parse(tenantID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tenant_id inválido")
		}
		q = q.Where("notification_log_tenant_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var logs []model.NotificationLog
	if err := q.Order("notification_log_sent_at " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "Notificações listadas", logs, helper.BuildMeta(total, p))
}
