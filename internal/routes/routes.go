package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/matie/internal/config"
	"github.com/example/matie/internal/handlers"
	"github.com/example/matie/internal/middleware"
	"github.com/example/matie/internal/services"
	"github.com/example/matie/internal/storage"
	"github.com/example/matie/internal/tracking"
)

// Register wires all HTTP routes.
func Register(
	app *fiber.App,
	db *gorm.DB,
	cfg *config.Config,
	backend storage.Store,
	tracker *tracking.Service,
	warehouse *services.WarehouseService,
	chat *services.ChatService,
) {
	cartHandler := handlers.NewCartHandler(db, backend)
	checkoutHandler := handlers.NewCheckoutHandler(backend)
	orderHandler := handlers.NewOrderHandler(db, cartHandler, checkoutHandler, tracker)
	trackingHandler := handlers.NewTrackingHandler(db, tracker)
	inventoryHandler := handlers.NewInventoryHandler(warehouse)
	chatHandler := handlers.NewChatHandler(chat)
	catalogHandler := handlers.NewCatalogHandler(db)
	authHandler := handlers.NewAuthHandler(cfg)
	adminHandler := handlers.NewAdminHandler(db, warehouse)

	app.Use(middleware.SessionMiddleware())

	api := app.Group("/api")

	// Catalog
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:slug", catalogHandler.GetProduct)
	api.Get("/gift-options", catalogHandler.ListGiftOptions)
	api.Get("/assortments", catalogHandler.ListAssortment)
	api.Get("/addresses", catalogHandler.ListAddresses)
	api.Get("/shipping-methods", catalogHandler.ListShippingMethods)

	// Cart
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.GetCart)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id/quantity", cartHandler.UpdateQuantity)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)
	cartGroup.Put("/items/:id/address", cartHandler.SetAddress)
	cartGroup.Put("/items/:id/address-id", cartHandler.SetAddressID)
	cartGroup.Put("/items/:id/shipping-method", cartHandler.SetShippingMethod)
	cartGroup.Put("/items/:id/delivery-date", cartHandler.SetDeliveryDate)
	cartGroup.Put("/items/:id/gift-message", cartHandler.SetGiftMessage)
	cartGroup.Put("/items/:id/relationship", cartHandler.SetRelationship)
	cartGroup.Put("/items/:id/occasion", cartHandler.SetOccasion)
	cartGroup.Put("/common-address", cartHandler.SetCommonAddress)
	cartGroup.Put("/common-shipping-method", cartHandler.SetCommonShippingMethod)
	cartGroup.Put("/multi-ship", cartHandler.SetMultiShip)
	cartGroup.Post("/promo", cartHandler.ApplyPromo)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Checkout and payment
	api.Post("/checkout", checkoutHandler.Save)
	api.Get("/checkout", checkoutHandler.Get)
	app.Post("/payment", orderHandler.Pay)
	api.Get("/orders", orderHandler.List)
	api.Get("/orders/:number", orderHandler.Get)

	// Tracking
	api.Get("/tracking", trackingHandler.Track)
	api.Post("/tracking/dismiss", trackingHandler.Dismiss)

	// Inventory and chat
	api.Post("/inventory/check", inventoryHandler.Check)
	app.Post("/chat", chatHandler.Send)

	// Admin
	app.Post("/admin/login", authHandler.Login)

	admin := app.Group("/admin", middleware.AdminMiddleware(cfg))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/shipping", adminHandler.ListShipping)
	admin.Put("/shipping/:id", adminHandler.UpdateShipping)
	admin.Delete("/shipping/:id", adminHandler.DeleteShipping)
	admin.Get("/customers", adminHandler.ListCustomers)
	admin.Put("/customers/:id", adminHandler.UpdateCustomer)
	admin.Delete("/customers/:id", adminHandler.DeleteCustomer)
	admin.Get("/warehouse", adminHandler.ListWarehouse)
	admin.Post("/warehouse/update", adminHandler.UpdateWarehouse)
}
