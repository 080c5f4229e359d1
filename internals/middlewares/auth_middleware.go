package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentix_backend/internals/configs"
	authmodel "rentix_backend/internals/features/users/auth/model"
	authsvc "rentix_backend/internals/features/users/auth/service"
	helper "rentix_backend/internals/helpers"
)

// AuthMiddleware valida o Bearer token, recusa tokens na blacklist e grava
// manager_id nos locals para os handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token de acesso ausente")
		}

		var blacklisted int64
		if err := db.Model(&authmodel.TokenBlacklist{}).
			Where("token = ?", raw).Count(&blacklisted).Error; err == nil && blacklisted > 0 {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token revogado")
		}

		claims, err := authsvc.ParseToken(raw, configs.JWTSecret)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		managerID, ok := claims["manager_id"].(string)
		if !ok || managerID == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token sem manager_id")
		}

		c.Locals("manager_id", managerID)
		return c.Next()
	}
}
