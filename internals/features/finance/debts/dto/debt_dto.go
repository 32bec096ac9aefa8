package dto

import (
	"time"

	"github.com/google/uuid"

	"almanar_backend/internals/features/finance/debts/model"
	"almanar_backend/internals/features/finance/debts/service"
)

type CreateDebtRequest struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	Description string    `json:"description" validate:"required,min=2,max=255"`
	Owed        float64   `json:"owed" validate:"required,gte=0"`
	Paid        float64   `json:"paid" validate:"omitempty,gte=0"`
}

type UpdateDebtRequest struct {
	Description *string  `json:"description" validate:"omitempty,min=2,max=255"`
	Owed        *float64 `json:"owed" validate:"omitempty,gte=0"`
	Paid        *float64 `json:"paid" validate:"omitempty,gte=0"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type DebtResponse struct {
	DebtID      uuid.UUID          `json:"debt_id"`
	StudentID   uuid.UUID          `json:"student_id"`
	Description string             `json:"description"`
	Ledger      service.LedgerLine `json:"ledger"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ToDebtResponse(m *model.DebtModel) DebtResponse {
	return DebtResponse{
		DebtID:      m.DebtID,
		StudentID:   m.DebtStudentID,
		Description: m.DebtDescription,
		Ledger:      service.Compute(m.DebtOwed, m.DebtPaid),
		CreatedAt:   m.DebtCreatedAt,
	}
}

func ToDebtResponseList(list []model.DebtModel) []DebtResponse {
	out := make([]DebtResponse, 0, len(list))
	for i := range list {
		out = append(out, ToDebtResponse(&list[i]))
	}
	return out
}
