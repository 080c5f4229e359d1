package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/features/finance/fines/controller"
)

func FineSettingsRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewFineSettingsController(db)

	g := r.Group("/fine-settings")
	g.Get("/", ctrl.GetFineSettings)
	g.Patch("/", ctrl.UpdateFineSettings)
}
