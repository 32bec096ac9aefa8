package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/notifications/controller"
)

// NotificationUserRoutes: a student's inbox.
func NotificationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notifications := r.Group("/notifications")
	notifications.Get("/mine", ctrl.ListMine)
	notifications.Post("/:id/read", ctrl.MarkRead)
}

// NotificationAdminRoutes: broadcasting and the audit list.
func NotificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notifications := r.Group("/notifications")
	notifications.Post("/", ctrl.Create)
	notifications.Get("/", ctrl.List)
}
