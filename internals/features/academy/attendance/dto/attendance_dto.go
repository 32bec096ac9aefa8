package dto

import (
	"time"

	"github.com/google/uuid"

	"almanar_backend/internals/features/academy/attendance/model"
)

type MarkAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string    `json:"status" validate:"required,oneof=present absent excused unset"`
	Reason    string    `json:"reason" validate:"omitempty,max=500"`
}

type AttendanceCellResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
}

type SheetQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

// SheetRow is one student line in the per-course marking sheet.
type SheetRow struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`
	Status      string    `json:"status"`
	Reason      *string   `json:"reason,omitempty"`
}

func ToCellResponse(m *model.AttendanceModel) AttendanceCellResponse {
	return AttendanceCellResponse{
		StudentID: m.AttendanceStudentID,
		CourseID:  m.AttendanceCourseID,
		Date:      m.AttendanceDate.Format("2006-01-02"),
		Status:    m.AttendanceStatus,
		Reason:    m.AttendanceReason,
	}
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
