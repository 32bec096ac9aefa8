package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/users/user/controller"
	ossHelper "almanar_backend/internals/helpers/oss"
)

// UserRoutes mounts the profile endpoints under an already-authenticated
// group.
func UserRoutes(r fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := controller.NewProfileController(db, oss)

	profile := r.Group("/profile")
	profile.Get("/", ctrl.GetMine)
	profile.Put("/", ctrl.Update)
	profile.Post("/avatar", ctrl.UploadAvatar)
}
