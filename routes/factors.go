package routes

import (
	"time"

	"ecopulse/emissions"

	"github.com/gofiber/fiber/v2"
)

func SetupFactorRoutes(api fiber.Router, table *emissions.Table) {
	api.Get("/emission-factors", func(c *fiber.Ctx) error {
		return c.JSON(table.Factors())
	})

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "EcoPulse NGO Sustainability Platform API",
			"version": "1.0.0",
		})
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
