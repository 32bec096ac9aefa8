package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/students/controller"
)

// StudentAdminRoutes: student registry management, admin only.
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	students := r.Group("/students")
	students.Get("/", ctrl.List)
	students.Get("/:id", ctrl.GetByID)
	students.Post("/", ctrl.Create)
	students.Put("/:id", ctrl.Update)
	students.Delete("/:id", ctrl.Delete)
}
