package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	debtModel "almanar_backend/internals/features/finance/debts/model"
	ledger "almanar_backend/internals/features/finance/debts/service"
	"almanar_backend/internals/features/finance/payments/dto"
	"almanar_backend/internals/features/finance/payments/model"
	"almanar_backend/internals/features/finance/payments/service"
	helper "almanar_backend/internals/helpers"
	ossHelper "almanar_backend/internals/helpers/oss"
)

type PaymentController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService
}

func NewPaymentController(db *gorm.DB, oss *ossHelper.OSSService) *PaymentController {
	return &PaymentController{DB: db, OSS: oss}
}

/* ======================= SUBMIT (student) ======================= */
// POST /api/u/payments  (multipart: debt_id, amount, note, proof)
func (h *PaymentController) Submit(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// The debt must exist and belong to the caller.
	var debt debtModel.DebtModel
	if err := h.DB.Where("debt_id = ? AND debt_student_id = ?", req.DebtID, studentID).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدين غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var proofURL *string
	if fh, ferr := c.FormFile("proof"); ferr == nil && fh != nil {
		if h.OSS == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "خدمة رفع الملفات غير متاحة حاليًا")
		}
		url, uerr := h.OSS.UploadAsWebP(c.UserContext(), fh, "payment-proofs")
		if uerr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "تعذر رفع إثبات الدفع")
		}
		proofURL = &url
	}

	var note *string
	if n := strings.TrimSpace(req.Note); n != "" {
		note = &n
	}

	m := &model.PaymentRequestModel{
		PaymentRequestDebtID:    req.DebtID,
		PaymentRequestStudentID: studentID,
		PaymentRequestAmount:    req.Amount,
		PaymentRequestNote:      note,
		PaymentRequestProofURL:  proofURL,
		PaymentRequestStatus:    model.StatusPending,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إرسال طلب الدفع")
	}

	return helper.JsonCreated(c, "تم إرسال طلب الدفع وهو قيد المراجعة", dto.ToPaymentRequestResponse(m))
}

/* ======================= LIST MINE (student) ======================= */
// GET /api/u/payments/mine
func (h *PaymentController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var list []model.PaymentRequestModel
	if err := h.DB.
		Where("payment_request_student_id = ?", studentID).
		Order("payment_request_created_at DESC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToPaymentRequestResponseList(list))
}

/* ======================= LIST (admin) ======================= */
// GET /api/a/payments?status=pending
func (h *PaymentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.PaymentRequestModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		base = base.Where("payment_request_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.PaymentRequestModel
	if err := base.
		Order("payment_request_created_at ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToPaymentRequestResponseList(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= APPROVE (admin) ======================= */
// POST /api/a/payments/:id/approve
//
// The status flip and the debt credit commit together; the guarded
// UPDATE makes a second review of the same request a 409, not a
// double credit.
func (h *PaymentController) Approve(c *fiber.Ctx) error {
	return h.review(c, model.StatusApproved)
}

/* ======================= REJECT (admin) ======================= */
// POST /api/a/payments/:id/reject
func (h *PaymentController) Reject(c *fiber.Ctx) error {
	return h.review(c, model.StatusRejected)
}

func (h *PaymentController) review(c *fiber.Ctx, verdict string) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف غير صالح")
	}
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	reviewed, txErr := service.Review(h.DB, id, verdict, adminID)
	switch {
	case txErr == nil:
	case errors.Is(txErr, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "طلب الدفع غير موجود")
	case errors.Is(txErr, service.ErrAlreadyReviewed):
		return fiber.NewError(fiber.StatusConflict, "تمت مراجعة هذا الطلب مسبقًا")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "تعذرت مراجعة طلب الدفع")
	}

	msg := "تم رفض طلب الدفع"
	if verdict == model.StatusApproved {
		msg = "تمت الموافقة على طلب الدفع وتحديث الدين"
	}
	return helper.JsonUpdated(c, msg, dto.ToPaymentRequestResponse(&reviewed))
}

/* ======================= CHECKOUT (student) ======================= */
// POST /api/u/payments/checkout  {debt_id, amount}
//
// Returns a Snap token for paying the debt online.
func (h *PaymentController) Checkout(c *fiber.Ctx) error {
	if !service.CheckoutReady() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "الدفع الإلكتروني غير متاح حاليًا")
	}

	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req struct {
		DebtID uuid.UUID `json:"debt_id" validate:"required"`
		Amount float64   `json:"amount" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var row struct {
		StudentName string `gorm:"column:student_name"`
	}
	res := h.DB.Raw(`
		SELECT s.student_name
		FROM debts d
		JOIN students s ON s.student_id = d.debt_student_id
		WHERE d.debt_id = ? AND d.debt_student_id = ?
	`, req.DebtID, studentID).Scan(&row)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الدين غير موجود")
	}

	token, orderID, err := service.GenerateSnapToken(req.DebtID, row.StudentName, req.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "تعذر إنشاء جلسة الدفع")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"snap_token": token,
		"order_id":   orderID,
	})
}

/* ======================= WEBHOOK ======================= */
// POST /api/payments/midtrans/notification
//
// Settled orders credit the debt and leave an approved request row as
// the audit trail. Replayed notifications are deduplicated on the
// order id stored in the note.
func (h *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var payload struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		GrossAmount       string `json:"gross_amount"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}

	settled := payload.TransactionStatus == "settlement" ||
		(payload.TransactionStatus == "capture" && payload.FraudStatus == "accept")
	if !settled {
		return helper.JsonOK(c, "ignored", fiber.Map{"order_id": payload.OrderID})
	}

	debtID, err := service.ParseOrderDebtID(payload.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unrecognized order id")
	}
	amount, err := strconv.ParseFloat(payload.GrossAmount, 64)
	if err != nil || amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gross amount")
	}

	note := fmt.Sprintf("midtrans:%s", payload.OrderID)
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&model.PaymentRequestModel{}).
			Where("payment_request_note = ?", note).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return nil
		}

		var debt debtModel.DebtModel
		if err := tx.Where("debt_id = ?", debtID).First(&debt).Error; err != nil {
			return err
		}

		now := time.Now()
		rec := &model.PaymentRequestModel{
			PaymentRequestDebtID:     debt.DebtID,
			PaymentRequestStudentID:  debt.DebtStudentID,
			PaymentRequestAmount:     amount,
			PaymentRequestNote:       &note,
			PaymentRequestStatus:     model.StatusApproved,
			PaymentRequestReviewedAt: &now,
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		return tx.Model(&debtModel.DebtModel{}).
			Where("debt_id = ?", debt.DebtID).
			Update("debt_paid", ledger.ApplyPayment(debt.DebtPaid, amount)).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "debt not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to process notification")
	}

	return helper.JsonOK(c, "ok", fiber.Map{"order_id": payload.OrderID})
}
