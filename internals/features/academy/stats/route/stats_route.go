package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/stats/controller"
)

// StatsUserRoutes: a student's own attendance summary.
func StatsUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStatsController(db)

	stats := r.Group("/stats")
	stats.Get("/mine", ctrl.MySummary)
}

// StatsAdminRoutes: dashboard overview.
func StatsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStatsController(db)

	stats := r.Group("/stats")
	stats.Get("/overview", ctrl.Overview)
}
