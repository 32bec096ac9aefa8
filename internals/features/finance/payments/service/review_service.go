package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	debtModel "almanar_backend/internals/features/finance/debts/model"
	ledger "almanar_backend/internals/features/finance/debts/service"
	"almanar_backend/internals/features/finance/payments/model"
)

// ErrAlreadyReviewed marks a request that left the pending state before
// this review ran.
var ErrAlreadyReviewed = errors.New("payment request already reviewed")

// Review flips a pending request to the verdict. On approval the debt
// credit commits in the same transaction, and the guarded UPDATE makes
// a second review of the same request ErrAlreadyReviewed, never a
// double credit.
func Review(db *gorm.DB, requestID uuid.UUID, verdict string, reviewer uuid.UUID) (model.PaymentRequestModel, error) {
	var reviewed model.PaymentRequestModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.PaymentRequestModel{}).
			Where("payment_request_id = ? AND payment_request_status = ?", requestID, model.StatusPending).
			Updates(map[string]interface{}{
				"payment_request_status":      verdict,
				"payment_request_reviewed_at": now,
				"payment_request_reviewed_by": reviewer,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&model.PaymentRequestModel{}).
				Where("payment_request_id = ?", requestID).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadyReviewed
		}

		if err := tx.Where("payment_request_id = ?", requestID).First(&reviewed).Error; err != nil {
			return err
		}

		if verdict == model.StatusApproved {
			var debt debtModel.DebtModel
			if err := tx.Where("debt_id = ?", reviewed.PaymentRequestDebtID).First(&debt).Error; err != nil {
				return err
			}
			newPaid := ledger.ApplyPayment(debt.DebtPaid, reviewed.PaymentRequestAmount)
			if err := tx.Model(&debtModel.DebtModel{}).
				Where("debt_id = ?", debt.DebtID).
				Update("debt_paid", newPaid).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return reviewed, txErr
}
