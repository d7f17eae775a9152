package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/matie/internal/cart"
	"github.com/example/matie/internal/middleware"
	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/shipping"
	"github.com/example/matie/internal/tracking"
	"github.com/example/matie/internal/utils"
)

// ReviewShippingFee is the flat shipping charge shown on the review step.
const ReviewShippingFee = 8.99

// OrderHandler turns a staged cart into a paid order.
type OrderHandler struct {
	db       *gorm.DB
	carts    *CartHandler
	checkout *CheckoutHandler
	tracker  *tracking.Service
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, carts *CartHandler, checkout *CheckoutHandler, tracker *tracking.Service) *OrderHandler {
	return &OrderHandler{db: db, carts: carts, checkout: checkout, tracker: tracker}
}

type paymentRequest struct {
	UserID    int     `json:"user_id"`
	Amount    float64 `json:"amount"`
	OrderInfo string  `json:"order_info"`
}

// Pay records the payment, persists the order, seeds delivery tracking
// for its shipments, and clears the session's cart and checkout data.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.carts.Store(c)
	if store.Empty() {
		return fiber.NewError(fiber.StatusBadRequest, "Your cart is empty!")
	}

	sessionID := middleware.GetSessionID(c)
	checkoutData := h.checkout.Load(sessionID)
	if checkoutData == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please complete checkout before paying.")
	}

	lines := store.Lines()
	subtotal := store.Subtotal()
	discount := cart.Discount(subtotal, store.Promo())
	total := cart.FinalTotal(subtotal, discount, ReviewShippingFee)

	payment := models.Payment{
		UserID:    req.UserID,
		Amount:    total,
		Status:    "paid",
		OrderInfo: req.OrderInfo,
	}

	order := models.Order{
		OrderNumber:  fmt.Sprintf("order-%d", time.Now().UnixMilli()),
		Status:       "processing",
		PlacedAt:     time.Now(),
		Subtotal:     subtotal,
		ShippingFee:  ReviewShippingFee,
		TotalAmount:  total,
		ContactEmail: checkoutData.Email,
		ContactPhone: checkoutData.Phone,
	}

	for _, line := range lines {
		unit := line.UnitPrice()
		order.Items = append(order.Items, models.OrderItem{
			LineID:            line.ID,
			ProductName:       line.ProductName,
			ItemNumber:        line.ItemNumber,
			Quantity:          line.Quantity,
			UnitPrice:         unit,
			LineTotal:         unit * float64(line.Quantity),
			GiftMessage:       line.GiftMessage,
			ShippingMethod:    line.ShippingMethod,
			DeliveryDate:      line.DeliveryDate,
			ShippingAddressID: line.ShippingAddressID,
			ShipTo: models.ShipTo{
				Name:   line.ShippingAddress.Name,
				Street: line.ShippingAddress.Street,
				City:   line.ShippingAddress.City,
				State:  line.ShippingAddress.State,
				Zip:    line.ShippingAddress.Zip,
				Phone:  line.ShippingAddress.Phone,
			},
		})
	}

	shipments := shipping.GroupByAddress(lines, h.carts.addressBook())

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.PaymentID = &payment.ID
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		records := shippingRecords(order, shipments)
		return tx.Create(&records).Error
	})
	if err != nil {
		log.Printf("[Order] failed to persist order: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to place order")
	}

	h.tracker.Seed(order.OrderNumber, tracking.SeedsFromShipments(shipments))

	store.Clear()
	h.checkout.Clear(sessionID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"payment_id":   payment.ID,
			"order_number": order.OrderNumber,
			"total":        total,
		},
	})
}

// shippingRecords builds one admin dashboard row per checkout shipment.
func shippingRecords(order models.Order, shipments []shipping.Shipment) []models.ShippingRecord {
	records := make([]models.ShippingRecord, 0, len(shipments))
	for _, shipment := range shipments {
		var estimated *time.Time
		for _, line := range shipment.Items {
			if line.DeliveryDate == "" {
				continue
			}
			if parsed, err := time.Parse(cart.ISODate, line.DeliveryDate); err == nil {
				estimated = &parsed
				break
			}
		}

		records = append(records, models.ShippingRecord{
			OrderRef:          order.OrderNumber,
			CustomerName:      shipment.Address.Name,
			Address:           shipment.Address.FullAddress,
			Status:            "Processing",
			EstimatedDelivery: estimated,
		})
	}
	return records
}

// List returns placed orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	var orders []models.Order
	var total int64

	if err := h.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return err
	}

	err := h.db.Preload("Items").
		Order("placed_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&orders).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"meta": fiber.Map{
			"page":  pagination.Page,
			"limit": pagination.Limit,
			"total": total,
		},
	})
}

// Get returns a single order by its order number.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderNumber := tracking.NormalizeOrderID(c.Params("number"))

	var order models.Order
	err := h.db.Preload("Items").
		Where("LOWER(order_number) = ?", orderNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
