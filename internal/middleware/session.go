package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie     = "matie_session"
	sessionContextKey = "cartSessionID"
)

// SessionMiddleware assigns every visitor an opaque session id carried
// in a cookie; the cart and checkout stores are keyed by it.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(sessionCookie)
		if sessionID == "" {
			sessionID = c.Get("X-Session-ID")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		c.Locals(sessionContextKey, sessionID)
		return c.Next()
	}
}

// GetSessionID extracts the visitor session id from context.
func GetSessionID(c *fiber.Ctx) string {
	if value, ok := c.Locals(sessionContextKey).(string); ok {
		return value
	}
	return ""
}
