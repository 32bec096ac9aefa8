package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PaymentRequestModel is a student's claim of having paid toward a
// debt. Approval credits the debt; both happen in one transaction.
type PaymentRequestModel struct {
	PaymentRequestID        uuid.UUID `gorm:"column:payment_request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_request_id"`
	PaymentRequestDebtID    uuid.UUID `gorm:"column:payment_request_debt_id;type:uuid;not null;index" json:"payment_request_debt_id"`
	PaymentRequestStudentID uuid.UUID `gorm:"column:payment_request_student_id;type:uuid;not null;index" json:"payment_request_student_id"`

	PaymentRequestAmount   float64 `gorm:"column:payment_request_amount;type:numeric(12,2);not null" json:"payment_request_amount"`
	PaymentRequestNote     *string `gorm:"column:payment_request_note;type:text" json:"payment_request_note,omitempty"`
	PaymentRequestProofURL *string `gorm:"column:payment_request_proof_url;type:text" json:"payment_request_proof_url,omitempty"`

	PaymentRequestStatus     string     `gorm:"column:payment_request_status;type:varchar(20);not null;default:'pending'" json:"payment_request_status"`
	PaymentRequestReviewedAt *time.Time `gorm:"column:payment_request_reviewed_at" json:"payment_request_reviewed_at,omitempty"`
	PaymentRequestReviewedBy *uuid.UUID `gorm:"column:payment_request_reviewed_by;type:uuid" json:"payment_request_reviewed_by,omitempty"`

	PaymentRequestCreatedAt time.Time `gorm:"column:payment_request_created_at;autoCreateTime" json:"payment_request_created_at"`
}

func (PaymentRequestModel) TableName() string {
	return "payment_requests"
}
