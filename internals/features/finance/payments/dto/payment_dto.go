package dto

import (
	"time"

	"github.com/google/uuid"

	"almanar_backend/internals/features/finance/payments/model"
)

// SubmitPaymentRequest arrives as multipart form fields; the proof
// image rides alongside as the "proof" file part.
type SubmitPaymentRequest struct {
	DebtID uuid.UUID `form:"debt_id" validate:"required"`
	Amount float64   `form:"amount" validate:"required,gt=0"`
	Note   string    `form:"note" validate:"omitempty,max=500"`
}

type PaymentRequestResponse struct {
	PaymentRequestID uuid.UUID  `json:"payment_request_id"`
	DebtID           uuid.UUID  `json:"debt_id"`
	StudentID        uuid.UUID  `json:"student_id"`
	Amount           float64    `json:"amount"`
	Note             *string    `json:"note,omitempty"`
	ProofURL         *string    `json:"proof_url,omitempty"`
	Status           string     `json:"status"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToPaymentRequestResponse(m *model.PaymentRequestModel) PaymentRequestResponse {
	return PaymentRequestResponse{
		PaymentRequestID: m.PaymentRequestID,
		DebtID:           m.PaymentRequestDebtID,
		StudentID:        m.PaymentRequestStudentID,
		Amount:           m.PaymentRequestAmount,
		Note:             m.PaymentRequestNote,
		ProofURL:         m.PaymentRequestProofURL,
		Status:           m.PaymentRequestStatus,
		ReviewedAt:       m.PaymentRequestReviewedAt,
		CreatedAt:        m.PaymentRequestCreatedAt,
	}
}

func ToPaymentRequestResponseList(list []model.PaymentRequestModel) []PaymentRequestResponse {
	out := make([]PaymentRequestResponse, 0, len(list))
	for i := range list {
		out = append(out, ToPaymentRequestResponse(&list[i]))
	}
	return out
}
