package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/features/users/auth/controller"
)

// AuthPublicRoutes: registro/login, sem middleware de autenticação.
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	g := r.Group("/auth")
	g.Post("/register", ctrl.Register)
	g.Post("/login", ctrl.Login)
	g.Post("/google", ctrl.GoogleLogin)
	g.Post("/refresh", ctrl.Refresh)
}

// AuthProtectedRoutes: operações que exigem o token válido.
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	g := r.Group("/auth")
	g.Post("/logout", ctrl.Logout)
	g.Get("/me", ctrl.Me)
}
