package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fineroute "rentix_backend/internals/features/finance/fines/route"
	paymentroute "rentix_backend/internals/features/finance/payments/route"
	notifroute "rentix_backend/internals/features/notifications/route"
	notifsvc "rentix_backend/internals/features/notifications/service"
	propertyroute "rentix_backend/internals/features/rentals/properties/route"
	tenantroute "rentix_backend/internals/features/rentals/tenants/route"
	authroute "rentix_backend/internals/features/users/auth/route"
	"rentix_backend/internals/middlewares"
)

// SetupRoutes monta a árvore de rotas:
//
//	/api        → públicas (auth)
//	/api/m      → gestor autenticado (JWT + blacklist)
func SetupRoutes(app *fiber.App, db *gorm.DB, sender *notifsvc.Sender) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	public := api.Group("", middlewares.LoginRateLimiter())
	authroute.AuthPublicRoutes(public, db)

	m := api.Group("/m", middlewares.AuthMiddleware(db))
	authroute.AuthProtectedRoutes(m, db)
	tenantroute.TenantRoutes(m, db, sender)
	propertyroute.PropertyRoutes(m, db)
	paymentroute.PaymentRoutes(m, db, sender)
	fineroute.FineSettingsRoutes(m, db)
	notifroute.NotificationRoutes(m, db)
}
