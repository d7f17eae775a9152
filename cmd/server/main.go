package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/matie/internal/config"
	"github.com/example/matie/internal/database"
	"github.com/example/matie/internal/routes"
	"github.com/example/matie/internal/services"
	"github.com/example/matie/internal/storage"
	"github.com/example/matie/internal/tracking"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	database.Seed(db)

	backend := storage.NewGormStore(db)
	tracker := tracking.NewService(backend)
	warehouse := services.NewWarehouseService(db)
	chat := services.NewChatService(cfg.ChatAPIURL, cfg.ChatAPIKey, cfg.ChatModel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go tracker.Run(ctx, cfg.TrackingTick)
	go warehouse.Run(ctx, cfg.WarehouseFlush)

	app := fiber.New(fiber.Config{
		AppName: "Matie Cake Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, backend, tracker, warehouse, chat)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Printf("fiber.Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
