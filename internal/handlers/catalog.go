package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/matie/internal/cart"
	"github.com/example/matie/internal/models"
)

// CatalogHandler serves the storefront's static catalog data.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListProducts returns all products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Order("name ASC").Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct returns one product by slug.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := h.db.First(&product, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// ListGiftOptions returns the configurable gift add-ons.
func (h *CatalogHandler) ListGiftOptions(c *fiber.Ctx) error {
	var options []models.GiftOption
	if err := h.db.Find(&options).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": options})
}

// ListAssortment returns the box-filler flavors.
func (h *CatalogHandler) ListAssortment(c *fiber.Ctx) error {
	var options []models.AssortmentOption
	if err := h.db.Find(&options).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": options})
}

// ListAddresses returns the saved address book.
func (h *CatalogHandler) ListAddresses(c *fiber.Ctx) error {
	var addresses []models.KnownAddress
	if err := h.db.Find(&addresses).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": addresses})
}

// ListShippingMethods returns the delivery methods with their computed
// estimated dates and the earliest selectable pick date.
func (h *CatalogHandler) ListShippingMethods(c *fiber.Ctx) error {
	now := time.Now()

	views := make([]fiber.Map, 0, len(cart.ShippingMethods))
	for _, method := range cart.ShippingMethods {
		view := fiber.Map{
			"id":          method.ID,
			"name":        method.Name,
			"price":       method.Price,
			"description": method.Description,
		}
		if method.ID != cart.MethodPickDate {
			estimated := cart.EstimatedDeliveryDate(method.ID, now)
			view["estimated_date"] = estimated.Format(cart.ISODate)
			view["estimated_label"] = cart.FormatDeliveryDate(estimated)
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"methods":       views,
			"min_pick_date": cart.MinDeliveryDate(now).Format(cart.ISODate),
		},
	})
}
