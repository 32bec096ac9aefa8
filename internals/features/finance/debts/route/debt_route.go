package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/finance/debts/controller"
)

// DebtUserRoutes: a student's own ledger.
func DebtUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDebtController(db)

	debts := r.Group("/debts")
	debts.Get("/mine", ctrl.ListMine)
}

// DebtAdminRoutes: ledger management.
func DebtAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDebtController(db)

	debts := r.Group("/debts")
	debts.Post("/", ctrl.Create)
	debts.Get("/student/:student_id", ctrl.ListByStudent)
	debts.Put("/:id", ctrl.Update)
	debts.Post("/:id/payments", ctrl.RecordPayment)
	debts.Delete("/:id", ctrl.Delete)
}
