package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/matie/internal/config"
	"github.com/example/matie/internal/utils"
)

// AuthHandler issues admin dashboard tokens.
type AuthHandler struct {
	cfg          *config.Config
	passwordHash string
}

// NewAuthHandler constructs AuthHandler. The configured admin password
// is hashed once at startup so only the hash stays in memory.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("[Auth] failed to hash admin password: %v", err)
	}
	return &AuthHandler{cfg: cfg, passwordHash: hash}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks admin credentials and returns a signed token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Username != h.cfg.AdminUser || !utils.CheckPassword(h.passwordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateAdminToken(h.cfg.JWTSecret, req.Username, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":      token,
			"expires_in": int(h.cfg.TokenExpires.Seconds()),
		},
	})
}
