package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/matie/internal/services"
)

// ChatHandler relays storefront chat messages to the assistant backend.
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send forwards a visitor message, with an optional attached image, and
// returns the assistant reply.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
		Image   string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message required")
	}

	reply, err := h.chat.Reply(req.Message, req.Image)
	if err != nil {
		log.Printf("[Chat] assistant request failed: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, "assistant is unavailable right now")
	}

	return c.JSON(fiber.Map{"success": true, "response": reply})
}
