package route

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	database "almanar_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "almanar-backend",
			"status":  "running",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database handle unavailable")
		}
		if err := sqlDB.PingContext(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     "up",
			"cache":  database.RedisHealthy(c.UserContext()),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
