package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/matie/internal/cart"
	"github.com/example/matie/internal/middleware"
	"github.com/example/matie/internal/models"
	"github.com/example/matie/internal/shipping"
	"github.com/example/matie/internal/storage"
)

// CartHandler manages the per-session shopping cart.
type CartHandler struct {
	db      *gorm.DB
	backend storage.Store

	mu     sync.Mutex
	stores map[string]*cart.Store
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, backend storage.Store) *CartHandler {
	return &CartHandler{
		db:      db,
		backend: backend,
		stores:  make(map[string]*cart.Store),
	}
}

// Store returns the loaded cart store for the request's session.
func (h *CartHandler) Store(c *fiber.Ctx) *cart.Store {
	sessionID := middleware.GetSessionID(c)

	h.mu.Lock()
	defer h.mu.Unlock()
	if store, ok := h.stores[sessionID]; ok {
		return store
	}

	store := cart.NewStore(h.backend, sessionID)
	store.Load()
	h.stores[sessionID] = store
	return store
}

// GetCart returns the cart lines with derived pricing and totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	store := h.Store(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.cartView(store),
	})
}

type addItemRequest struct {
	ProductSlug     string `json:"product_slug"`
	Quantity        int    `json:"quantity"`
	SelectedOptions []struct {
		Slug     string `json:"slug"`
		Quantity int    `json:"quantity"`
	} `json:"selected_options"`
	Assortment []struct {
		Slug     string `json:"slug"`
		Quantity int    `json:"quantity"`
	} `json:"assortment"`
}

// AddItem configures a product into a new cart line. The computed final
// price is snapshotted onto the line so later pricing never re-derives it.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var product models.Product
	if err := h.db.First(&product, "slug = ?", req.ProductSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	line := cart.Line{
		ID:              cart.NewLineID(),
		ProductID:       product.Slug,
		ProductName:     product.Name,
		ProductImage:    product.Image,
		BoxThumb:        product.BoxImage,
		ItemNumber:      cart.NewItemNumber(),
		BasePrice:       product.BasePrice,
		Quantity:        req.Quantity,
		GiftMessageType: cart.GiftMessageComplimentary,
		ShippingMethod:  cart.MethodStandard,
	}

	for _, sel := range req.SelectedOptions {
		if sel.Quantity <= 0 {
			continue
		}
		var option models.GiftOption
		if err := h.db.First(&option, "slug = ?", sel.Slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown gift option: "+sel.Slug)
			}
			return err
		}
		line.SelectedOptions = append(line.SelectedOptions, cart.Option{
			ID:       option.Slug,
			Name:     option.Name,
			Price:    option.Price,
			Quantity: sel.Quantity,
		})
	}

	for _, sel := range req.Assortment {
		var option models.AssortmentOption
		if err := h.db.First(&option, "slug = ?", sel.Slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown assortment option: "+sel.Slug)
			}
			return err
		}
		pick := cart.AssortmentPick{
			ID:         option.Slug,
			Name:       option.Name,
			ExtraPrice: option.ExtraPrice,
			Image:      option.Image,
		}
		for i := 0; i < sel.Quantity; i++ {
			if err := line.AddAssortment(pick); err != nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("you can pick at most %d box fillers", cart.MaxAssortmentQuantity))
			}
		}
	}

	finalPrice := line.UnitPrice()
	line.FinalPrice = &finalPrice

	store := h.Store(c)
	added := store.Add(line)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    added,
		"badge":   store.Badge(),
	})
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
	Delta    *int `json:"delta"`
}

// UpdateQuantity sets or adjusts a line's quantity.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	lineID := c.Params("id")

	var ok bool
	switch {
	case req.Quantity != nil:
		ok = store.SetQuantity(lineID, *req.Quantity)
	case req.Delta != nil:
		ok = store.AdjustQuantity(lineID, *req.Delta)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "quantity or delta required")
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// RemoveItem deletes a line. Removal requires an explicit confirmation
// flag; it is never performed silently.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "removal must be confirmed")
	}

	store := h.Store(c)
	if !store.Remove(c.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetAddress replaces a line's inline shipping address.
func (h *CartHandler) SetAddress(c *fiber.Ctx) error {
	var address cart.Address
	if err := c.BodyParser(&address); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	if !store.SetShippingAddress(c.Params("id"), address) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetAddressID points a line at a saved address-book entry.
func (h *CartHandler) SetAddressID(c *fiber.Ctx) error {
	var req struct {
		AddressID string `json:"address_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	if !store.SetShippingAddressID(c.Params("id"), req.AddressID) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetShippingMethod switches a line's delivery method.
func (h *CartHandler) SetShippingMethod(c *fiber.Ctx) error {
	var req struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !validShippingMethod(req.Method) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown shipping method")
	}

	store := h.Store(c)
	if !store.SetShippingMethod(c.Params("id"), req.Method) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetDeliveryDate records a pick-date selection for a line.
func (h *CartHandler) SetDeliveryDate(c *fiber.Ctx) error {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	if !store.SetPickDate(c.Params("id"), req.Date) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetGiftMessage updates a line's gift message and message type.
func (h *CartHandler) SetGiftMessage(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	lineID := c.Params("id")
	if !store.SetGiftMessageType(lineID, req.Type) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	if req.Type == cart.GiftMessageComplimentary {
		store.SetGiftMessage(lineID, req.Message)
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetRelationship updates the recipient relationship label.
func (h *CartHandler) SetRelationship(c *fiber.Ctx) error {
	var req struct {
		Relationship string `json:"relationship"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	if !store.SetRelationship(c.Params("id"), req.Relationship) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetOccasion updates the recipient occasion label.
func (h *CartHandler) SetOccasion(c *fiber.Ctx) error {
	var req struct {
		Occasion string `json:"occasion"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	if !store.SetOccasion(c.Params("id"), req.Occasion) {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetCommonAddress applies one address (and optional delivery date) to
// every line; used in single-ship mode.
func (h *CartHandler) SetCommonAddress(c *fiber.Ctx) error {
	var req struct {
		Address      cart.Address `json:"address"`
		DeliveryDate string       `json:"delivery_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	store.ApplyCommonAddress(req.Address, req.DeliveryDate)
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetCommonShippingMethod switches every line's delivery method.
func (h *CartHandler) SetCommonShippingMethod(c *fiber.Ctx) error {
	var req struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !validShippingMethod(req.Method) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown shipping method")
	}

	store := h.Store(c)
	store.ApplyCommonShippingMethod(req.Method)
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// SetMultiShip toggles multi-recipient mode.
func (h *CartHandler) SetMultiShip(c *fiber.Ctx) error {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	store.SetMultiShip(req.Enabled)
	return c.JSON(fiber.Map{"success": true, "data": h.cartView(store)})
}

// ApplyPromo applies, clears, or rejects a promo code.
func (h *CartHandler) ApplyPromo(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	store := h.Store(c)
	promo, err := store.ApplyPromo(req.Code)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "This promo code is not valid.")
	}

	message := "Promo code cleared."
	if promo != nil {
		message = fmt.Sprintf("Code %s applied: %.0f%% off your cart subtotal.", promo.Code, promo.DiscountRate*100)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    h.cartView(store),
	})
}

// Checkout validates address coverage, groups the cart into shipments,
// and stages them for the payment step.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	store := h.Store(c)
	if store.Empty() {
		return fiber.NewError(fiber.StatusBadRequest, "Your cart is empty!")
	}

	lines := store.Lines()
	if store.MultiShip() {
		if missing := shipping.MissingAddressCount(lines); missing > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Please select shipping addresses for all items. %d item(s) missing address.", missing))
		}
	}

	shipments := shipping.GroupByAddress(lines, h.addressBook())

	summaries := make([]fiber.Map, 0, len(shipments))
	for idx, shipment := range shipments {
		summaries = append(summaries, fiber.Map{
			"shipment":   idx + 1,
			"address":    shipment.Address,
			"item_count": shipment.ItemCount(),
			"total":      shipment.Total,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"shipments": summaries,
			"totals":    h.totals(store),
		},
	})
}

// addressBook loads the saved address book for grouping resolution.
func (h *CartHandler) addressBook() shipping.AddressBook {
	var saved []models.KnownAddress
	if err := h.db.Find(&saved).Error; err != nil {
		return shipping.AddressBook{}
	}

	book := make(shipping.AddressBook, len(saved))
	for _, entry := range saved {
		book[entry.Slug] = shipping.ResolvedAddress{
			ID:          entry.Slug,
			Name:        entry.Name,
			FullAddress: entry.FullAddress,
		}
	}
	return book
}

func (h *CartHandler) cartView(store *cart.Store) fiber.Map {
	lines := store.Lines()
	views := make([]fiber.Map, 0, len(lines))
	for _, line := range lines {
		unit := line.UnitPrice()
		views = append(views, fiber.Map{
			"line":       line,
			"unit_price": unit,
			"line_total": unit * float64(line.Quantity),
		})
	}

	return fiber.Map{
		"items":      views,
		"badge":      store.Badge(),
		"multi_ship": store.MultiShip(),
		"totals":     h.totals(store),
	}
}

func (h *CartHandler) totals(store *cart.Store) fiber.Map {
	subtotal := store.Subtotal()
	promo := store.Promo()
	discount := cart.Discount(subtotal, promo)
	// Shipping is calculated at checkout; the cart page shows zero.
	finalTotal := cart.FinalTotal(subtotal, discount, 0)

	totals := fiber.Map{
		"subtotal": subtotal,
		"discount": discount,
		"total":    finalTotal,
	}
	if promo != nil {
		totals["promo"] = promo
	}
	return totals
}

func validShippingMethod(method string) bool {
	for _, m := range cart.ShippingMethods {
		if m.ID == method {
			return true
		}
	}
	return false
}
