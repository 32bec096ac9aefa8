package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/finance/payments/controller"
	ossHelper "almanar_backend/internals/helpers/oss"
)

// PaymentPublicRoutes: the gateway webhook, no auth.
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db, nil)

	r.Post("/payments/midtrans/notification", ctrl.MidtransNotification)
}

// PaymentUserRoutes: submitting and tracking payment requests.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := controller.NewPaymentController(db, oss)

	payments := r.Group("/payments")
	payments.Post("/", ctrl.Submit)
	payments.Get("/mine", ctrl.ListMine)
	payments.Post("/checkout", ctrl.Checkout)
}

// PaymentAdminRoutes: the review queue.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db, nil)

	payments := r.Group("/payments")
	payments.Get("/", ctrl.List)
	payments.Post("/:id/approve", ctrl.Approve)
	payments.Post("/:id/reject", ctrl.Reject)
}
