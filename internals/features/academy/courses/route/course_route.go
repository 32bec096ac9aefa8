package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/courses/controller"
)

// CourseUserRoutes: read-only catalog for authenticated users.
func CourseUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)

	courses := r.Group("/courses")
	courses.Get("/", ctrl.List)
	courses.Get("/:id", ctrl.GetByID)
}

// CourseAdminRoutes: full CRUD, admin only.
func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)

	courses := r.Group("/courses")
	courses.Get("/", ctrl.List)
	courses.Get("/:id", ctrl.GetByID)
	courses.Post("/", ctrl.Create)
	courses.Put("/:id", ctrl.Update)
	courses.Delete("/:id", ctrl.Delete)
}
