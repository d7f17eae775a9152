package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/services"
	"github.com/example/matie/internal/utils"
)

var shippingStatuses = []string{"Processing", "In Transit", "Delivered", "Delayed"}

var vipLevels = []string{"New", "Bronze", "Silver", "Gold"}

// AdminHandler serves the shipping, customer and warehouse dashboards.
type AdminHandler struct {
	db        *gorm.DB
	warehouse *services.WarehouseService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, warehouse *services.WarehouseService) *AdminHandler {
	return &AdminHandler{db: db, warehouse: warehouse}
}

// Stats returns the dashboard overview counters.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var orderCount, customerCount, shipmentCount int64
	var revenue float64

	if err := h.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.CustomerProfile{}).Count(&customerCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.ShippingRecord{}).Count(&shipmentCount).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"orders":            orderCount,
			"customers":         customerCount,
			"shipments":         shipmentCount,
			"revenue":           revenue,
			"pending_stock_ops": h.warehouse.PendingCount(),
		},
	})
}

// ListShipping returns shipping records with optional status filter and
// text search over order ref and customer name.
func (h *AdminHandler) ListShipping(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	query := h.db.Model(&models.ShippingRecord{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(order_ref) LIKE ? OR LOWER(customer_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var records []models.ShippingRecord
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&records).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
		"meta": fiber.Map{
			"page":  pagination.Page,
			"limit": pagination.Limit,
			"total": total,
		},
	})
}

// UpdateShipping changes a shipping record's status.
func (h *AdminHandler) UpdateShipping(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !contains(shippingStatuses, req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown shipping status")
	}

	var record models.ShippingRecord
	if err := h.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "shipping record not found")
		}
		return err
	}

	record.Status = req.Status
	if err := h.db.Save(&record).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": record})
}

// DeleteShipping removes a shipping record.
func (h *AdminHandler) DeleteShipping(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.ShippingRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "shipping record not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListCustomers returns customer profiles with optional VIP filter and
// text search over name, email and phone.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	query := h.db.Model(&models.CustomerProfile{})
	if level := c.Query("vip_level"); level != "" {
		query = query.Where("vip_level = ?", level)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var customers []models.CustomerProfile
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&customers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
		"meta": fiber.Map{
			"page":  pagination.Page,
			"limit": pagination.Limit,
			"total": total,
		},
	})
}

// UpdateCustomer changes a customer's VIP level or account status.
func (h *AdminHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		VIPLevel *string `json:"vip_level"`
		Status   *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var customer models.CustomerProfile
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	if req.VIPLevel != nil {
		if !contains(vipLevels, *req.VIPLevel) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown VIP level")
		}
		customer.VIPLevel = *req.VIPLevel
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}

	if err := h.db.Save(&customer).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": customer})
}

// DeleteCustomer removes a customer profile.
func (h *AdminHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.CustomerProfile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "customer not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListWarehouse returns the stock snapshot including queued adjustments.
func (h *AdminHandler) ListWarehouse(c *fiber.Ctx) error {
	levels, err := h.warehouse.Snapshot()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": levels})
}

// UpdateWarehouse queues a stock adjustment. The change is applied
// asynchronously by the warehouse flush loop.
func (h *AdminHandler) UpdateWarehouse(c *fiber.Ctx) error {
	var req struct {
		ProductName    string `json:"product_name"`
		QuantityChange int    `json:"quantity_change"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product_name required")
	}
	if req.QuantityChange == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity_change must be non-zero")
	}

	h.warehouse.Enqueue(req.ProductName, req.QuantityChange)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "stock adjustment queued",
		"pending": h.warehouse.PendingCount(),
	})
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
