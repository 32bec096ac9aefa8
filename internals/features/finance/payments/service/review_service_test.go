package service

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	debtModel "almanar_backend/internals/features/finance/debts/model"
	ledger "almanar_backend/internals/features/finance/debts/service"
	"almanar_backend/internals/features/finance/payments/model"
)

// The review path is transaction logic; it runs against a throwaway
// Postgres set through TEST_DATABASE_URL and skips otherwise.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(&debtModel.DebtModel{}, &model.PaymentRequestModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedDebtWithRequest(t *testing.T, db *gorm.DB, owed, amount float64) (*debtModel.DebtModel, *model.PaymentRequestModel) {
	t.Helper()
	debt := &debtModel.DebtModel{
		DebtStudentID:   uuid.New(),
		DebtDescription: "رسوم الفصل الدراسي",
		DebtOwed:        owed,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("seed debt: %v", err)
	}
	req := &model.PaymentRequestModel{
		PaymentRequestDebtID:    debt.DebtID,
		PaymentRequestStudentID: debt.DebtStudentID,
		PaymentRequestAmount:    amount,
		PaymentRequestStatus:    model.StatusPending,
	}
	if err := db.Create(req).Error; err != nil {
		t.Fatalf("seed request: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM payment_requests WHERE payment_request_id = ?`, req.PaymentRequestID)
		db.Exec(`DELETE FROM debts WHERE debt_id = ?`, debt.DebtID)
	})
	return debt, req
}

func TestReview_ApproveCreditsDebtExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	debt, req := seedDebtWithRequest(t, db, 500, 200)
	reviewer := uuid.New()

	reviewed, err := Review(db, req.PaymentRequestID, model.StatusApproved, reviewer)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, reviewed.PaymentRequestStatus)
	assert.NotNil(t, reviewed.PaymentRequestReviewedAt)

	var after debtModel.DebtModel
	assert.NoError(t, db.Where("debt_id = ?", debt.DebtID).First(&after).Error)
	assert.Equal(t, 200.0, after.DebtPaid)

	line := ledger.Compute(after.DebtOwed, after.DebtPaid)
	assert.Equal(t, 300.0, line.Remaining)
	assert.Equal(t, ledger.StatusStarted, line.Status)

	// a replayed approval must conflict, not credit again
	_, err = Review(db, req.PaymentRequestID, model.StatusApproved, reviewer)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	assert.NoError(t, db.Where("debt_id = ?", debt.DebtID).First(&after).Error)
	assert.Equal(t, 200.0, after.DebtPaid)
}

func TestReview_RejectLeavesDebtUntouched(t *testing.T) {
	db := openTestDB(t)
	debt, req := seedDebtWithRequest(t, db, 500, 200)

	reviewed, err := Review(db, req.PaymentRequestID, model.StatusRejected, uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusRejected, reviewed.PaymentRequestStatus)

	var after debtModel.DebtModel
	assert.NoError(t, db.Where("debt_id = ?", debt.DebtID).First(&after).Error)
	assert.Equal(t, 0.0, after.DebtPaid)
}

func TestReview_MissingRequest(t *testing.T) {
	db := openTestDB(t)

	_, err := Review(db, uuid.New(), model.StatusApproved, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
