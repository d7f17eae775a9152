package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/matie/internal/config"
	"github.com/example/matie/internal/utils"
)

const adminContextKey = "currentAdminUser"

// AdminMiddleware validates admin JWT tokens and loads the admin
// username into context.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		username, err := utils.ParseAdminToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(adminContextKey, username)
		return c.Next()
	}
}

// GetCurrentAdmin extracts the authenticated admin username from context.
func GetCurrentAdmin(c *fiber.Ctx) (string, bool) {
	value := c.Locals(adminContextKey)
	if value == nil {
		return "", false
	}

	if username, ok := value.(string); ok {
		return username, true
	}

	return "", false
}
