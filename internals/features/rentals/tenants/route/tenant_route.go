package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifsvc "rentix_backend/internals/features/notifications/service"
	"rentix_backend/internals/features/rentals/tenants/controller"
)

func TenantRoutes(r fiber.Router, db *gorm.DB, sender *notifsvc.Sender) {
	ctrl := controller.NewTenantController(db, sender)

	g := r.Group("/tenants")
	g.Get("/", ctrl.GetTenants)
	g.Post("/", ctrl.CreateTenant)
	g.Get("/:id", ctrl.GetTenantByID)
	g.Patch("/:id", ctrl.UpdateTenant)
	g.Delete("/:id", ctrl.DeleteTenant)
}
