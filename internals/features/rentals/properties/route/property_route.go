package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/features/rentals/properties/controller"
)

func PropertyRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPropertyController(db)

	g := r.Group("/properties")
	g.Get("/", ctrl.GetProperties)
	g.Post("/", ctrl.CreateProperty)
	g.Get("/:id", ctrl.GetPropertyByID)
	g.Patch("/:id", ctrl.UpdateProperty)
	g.Post("/:id/photo", ctrl.UploadPropertyPhoto)
	g.Delete("/:id", ctrl.DeleteProperty)
}
