package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusExcused = "excused"
)

// AttendanceModel stores one mark per (student, course, date). Unmarked
// students simply have no row.
type AttendanceModel struct {
	AttendanceID        uuid.UUID `gorm:"column:attendance_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_id"`
	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_mark" json:"attendance_student_id"`
	AttendanceCourseID  uuid.UUID `gorm:"column:attendance_course_id;type:uuid;not null;uniqueIndex:uq_attendance_mark" json:"attendance_course_id"`
	AttendanceDate      time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_mark" json:"attendance_date"`

	AttendanceStatus string  `gorm:"column:attendance_status;type:varchar(20);not null" json:"attendance_status"`
	AttendanceReason *string `gorm:"column:attendance_reason;type:text" json:"attendance_reason,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}
