package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"almanar_backend/internals/features/finance/debts/dto"
	"almanar_backend/internals/features/finance/debts/model"
	"almanar_backend/internals/features/finance/debts/service"
	helper "almanar_backend/internals/helpers"
)

type DebtController struct {
	DB *gorm.DB
}

func NewDebtController(db *gorm.DB) *DebtController {
	return &DebtController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/debts
func (h *DebtController) Create(c *fiber.Ctx) error {
	var req dto.CreateDebtRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := &model.DebtModel{
		DebtStudentID:   req.StudentID,
		DebtDescription: strings.TrimSpace(req.Description),
		DebtOwed:        req.Owed,
		DebtPaid:        req.Paid,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إنشاء الدين")
	}

	return helper.JsonCreated(c, "تم تسجيل الدين", dto.ToDebtResponse(m))
}

/* ======================= LIST BY STUDENT (admin) ======================= */
// GET /api/a/debts/student/:student_id
func (h *DebtController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "معرّف الطالب غير صالح")
	}
	return h.listFor(c, studentID)
}

/* ======================= LIST MINE (student) ======================= */
// GET /api/u/debts/mine
func (h *DebtController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	return h.listFor(c, studentID)
}

func (h *DebtController) listFor(c *fiber.Ctx, studentID uuid.UUID) error {
	var list []model.DebtModel
	if err := h.DB.
		Where("debt_student_id = ?", studentID).
		Order("debt_created_at DESC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToDebtResponseList(list)
	lines := make([]service.LedgerLine, 0, len(resp))
	for _, d := range resp {
		lines = append(lines, d.Ledger)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"debts":  resp,
		"totals": service.Summarize(lines),
	})
}

/* ======================= UPDATE ======================= */
// PUT /api/a/debts/:id
func (h *DebtController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var req dto.UpdateDebtRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := map[string]interface{}{}
	if req.Description != nil {
		patch["debt_description"] = strings.TrimSpace(*req.Description)
	}
	if req.Owed != nil {
		patch["debt_owed"] = *req.Owed
	}
	if req.Paid != nil {
		patch["debt_paid"] = *req.Paid
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "لا توجد حقول للتحديث")
	}

	res := h.DB.Model(&model.DebtModel{}).Where("debt_id = ?", idStr).Updates(patch)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تحديث الدين")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الدين غير موجود")
	}

	var updated model.DebtModel
	if err := h.DB.Where("debt_id = ?", idStr).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "تم تحديث الدين", dto.ToDebtResponse(&updated))
}

/* ======================= RECORD PAYMENT ======================= */
// POST /api/a/debts/:id/payments
//
// Direct cash credit by the admin, no payment request involved.
func (h *DebtController) RecordPayment(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var req dto.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var updated model.DebtModel
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var curr model.DebtModel
		if err := tx.Where("debt_id = ?", idStr).First(&curr).Error; err != nil {
			return err
		}
		newPaid := service.ApplyPayment(curr.DebtPaid, req.Amount)
		if err := tx.Model(&model.DebtModel{}).
			Where("debt_id = ?", idStr).
			Update("debt_paid", newPaid).Error; err != nil {
			return err
		}
		return tx.Where("debt_id = ?", idStr).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدين غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تسجيل الدفعة")
	}

	return helper.JsonUpdated(c, "تم تسجيل الدفعة", dto.ToDebtResponse(&updated))
}

/* ======================= DELETE ======================= */
// DELETE /api/a/debts/:id
func (h *DebtController) Delete(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM payment_requests WHERE payment_request_debt_id = ?`, idStr).Error; err != nil {
			return err
		}
		res := tx.Exec(`DELETE FROM debts WHERE debt_id = ?`, idStr)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدين غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر حذف الدين")
	}

	return helper.JsonDeleted(c, "تم حذف الدين", fiber.Map{"id": idStr})
}
