package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/features/notifications/controller"
)

func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	g := r.Group("/notifications")
	g.Get("/", ctrl.GetNotificationLogs)
}
