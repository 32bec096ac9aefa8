package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentModel maps the students table. Attendance, enrollments and debts
// hang off this row; deleting it must cascade in dependency order.
type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	// nullable: admin-created students may have no login account yet
	StudentUserID *uuid.UUID `gorm:"column:student_user_id;type:uuid;uniqueIndex:uq_students_user_id" json:"student_user_id,omitempty"`

	StudentName  string  `gorm:"column:student_name;size:100;not null" json:"student_name"`
	StudentPhone *string `gorm:"column:student_phone;size:20" json:"student_phone,omitempty"`
	StudentEmail *string `gorm:"column:student_email;size:255" json:"student_email,omitempty"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }
