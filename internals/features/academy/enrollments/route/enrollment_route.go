package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/enrollments/controller"
)

// EnrollmentUserRoutes: a student's own enrollments.
func EnrollmentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEnrollmentController(db)

	enrollments := r.Group("/enrollments")
	enrollments.Get("/mine", ctrl.ListMine)
}

// EnrollmentAdminRoutes: enroll/unenroll and course rosters.
func EnrollmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEnrollmentController(db)

	enrollments := r.Group("/enrollments")
	enrollments.Post("/", ctrl.Enroll)
	enrollments.Delete("/", ctrl.Unenroll)
	enrollments.Get("/course/:course_id", ctrl.ListByCourse)
}
