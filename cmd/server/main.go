// Package main is the entry point for the payment backend. It loads
// configuration, connects Postgres and redis, wires the payment lifecycle
// service and starts the HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"krouai/internal/bakong"
	"krouai/internal/catalog"
	"krouai/internal/config"
	"krouai/internal/handlers"
	"krouai/internal/khqr"
	"krouai/internal/metrics"
	"krouai/internal/repositories"
	"krouai/internal/repositories/cache"
	"krouai/internal/routes"
	"krouai/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if cfg.BakongToken == "" || cfg.BakongAccount == "" {
		log.Fatal("BAKONG_TOKEN and BAKONG_ACCOUNT are required")
	}
	if err := catalog.Validate(); err != nil {
		log.Fatalf("Invalid credit catalog: %v", err)
	}

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()
	log.Println("PostgreSQL connected & migrations applied")

	redisClient := cache.NewRedisClient(cfg.Redis)
	statusCache := cache.NewService(redisClient, 5*time.Minute)
	if err := statusCache.Ping(context.Background()); err != nil {
		log.Printf("Redis unreachable, polling will always hit Bakong: %v", err)
	}
	defer func() {
		if err := statusCache.Close(); err != nil {
			log.Printf("Failed to close redis connection: %v", err)
		}
	}()

	encoder := khqr.NewEncoder(khqr.MerchantInfo{
		AccountID: cfg.BakongAccount,
		Name:      cfg.MerchantName,
		City:      cfg.MerchantCity,
	})
	oracle := bakong.NewClient(cfg.BakongAPIURL, cfg.BakongToken)
	paymentRepo := repositories.NewPaymentRepository(db)

	paymentService := payment.NewService(
		paymentRepo,
		oracle,
		encoder,
		statusCache,
		payment.Config{
			BillPrefix:       cfg.BillPrefix,
			StoreLabel:       cfg.StoreLabel,
			DeeplinkCallback: cfg.DeeplinkCallback,
			AppIconURL:       cfg.AppIconURL,
			AppName:          cfg.AppName,
		},
		metrics.NewPrometheusCollector(),
	)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthChecker{
		"database": sqlDB.Ping,
		"redis":    func() error { return statusCache.Ping(context.Background()) },
	})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/create-payment", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, paymentHandler, healthHandler)

	log.Fatal(app.Listen(":" + cfg.Port))
}
