// Package routes defines the API routing configuration.
package routes

import (
	"krouai/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the handlers onto the fiber app.
func SetupRoutes(app *fiber.App, paymentHandler *handlers.PaymentHandler, healthHandler *handlers.HealthHandler) {
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/create-payment", paymentHandler.CreatePayment)
	api.Post("/check-payment", paymentHandler.CheckPayment)
	api.Post("/payment-info", paymentHandler.PaymentInfo)
	api.Get("/credits/:user_id", paymentHandler.GetCredits)
}
