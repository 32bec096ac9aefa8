package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/attendance/controller"
)

// AttendanceUserRoutes: a student's own attendance history.
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := r.Group("/attendance")
	attendance.Get("/mine", ctrl.ListMine)
}

// AttendanceAdminRoutes: marking sheet and mark endpoint.
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := r.Group("/attendance")
	attendance.Post("/", ctrl.Mark)
	attendance.Get("/course/:course_id/sheet", ctrl.Sheet)
}
