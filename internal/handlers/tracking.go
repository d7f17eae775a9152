package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/tracking"
)

// TrackingHandler exposes order tracking lookup and shipper-card dismissal.
type TrackingHandler struct {
	db      *gorm.DB
	tracker *tracking.Service
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(db *gorm.DB, tracker *tracking.Service) *TrackingHandler {
	return &TrackingHandler{db: db, tracker: tracker}
}

// Track looks up an order's shipments by order id and contact phone.
// Both fields are matched in normalized form.
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	orderID := tracking.NormalizeOrderID(c.Query("orderId"))
	phone := tracking.NormalizePhone(c.Query("phone"))
	if orderID == "" || phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please enter both order ID and phone number.")
	}

	var order models.Order
	err := h.db.Preload("Items").
		Where("LOWER(order_number) = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound,
				"Order not found. Please check your order ID and phone number.")
		}
		return err
	}

	if tracking.NormalizePhone(order.ContactPhone) != phone {
		return fiber.NewError(fiber.StatusNotFound,
			"Order not found. Please check your order ID and phone number.")
	}

	machine, ok := h.tracker.Machine(orderID)
	if !ok {
		machine = h.tracker.Seed(orderID, tracking.SeedsFromOrder(order))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_id":  order.OrderNumber,
			"status":    order.Status,
			"placed_at": order.PlacedAt,
			"shipments": machine.Shipments(),
		},
	})
}

type dismissRequest struct {
	OrderID    string `json:"order_id"`
	ShipmentID string `json:"shipment_id"`
}

// Dismiss hides the shipper contact card for one shipment. The
// dismissal survives restarts and later re-seeds of the same order.
func (h *TrackingHandler) Dismiss(c *fiber.Ctx) error {
	var req dismissRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.OrderID == "" || req.ShipmentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id and shipment_id required")
	}

	if !h.tracker.Dismiss(req.OrderID, req.ShipmentID) {
		return fiber.NewError(fiber.StatusNotFound, "shipment not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
