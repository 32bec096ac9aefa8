package model

import (
	"time"

	"github.com/google/uuid"
)

// DebtModel is one ledger line: what a student owes for something and
// how much of it has been settled so far.
type DebtModel struct {
	DebtID          uuid.UUID `gorm:"column:debt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"debt_id"`
	DebtStudentID   uuid.UUID `gorm:"column:debt_student_id;type:uuid;not null;index" json:"debt_student_id"`
	DebtDescription string    `gorm:"column:debt_description;type:varchar(255);not null" json:"debt_description"`

	DebtOwed float64 `gorm:"column:debt_owed;type:numeric(12,2);not null" json:"debt_owed"`
	DebtPaid float64 `gorm:"column:debt_paid;type:numeric(12,2);not null;default:0" json:"debt_paid"`

	DebtCreatedAt time.Time `gorm:"column:debt_created_at;autoCreateTime" json:"debt_created_at"`
	DebtUpdatedAt time.Time `gorm:"column:debt_updated_at;autoUpdateTime" json:"debt_updated_at"`
}

func (DebtModel) TableName() string {
	return "debts"
}
