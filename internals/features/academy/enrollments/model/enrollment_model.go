package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel links a student to a course. The (student, course) pair
// is unique, re-enrolling is a no-op at the SQL level.
type EnrollmentModel struct {
	StudentCourseID        uuid.UUID `gorm:"column:student_course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_course_id"`
	StudentCourseStudentID uuid.UUID `gorm:"column:student_course_student_id;type:uuid;not null;uniqueIndex:uq_student_course" json:"student_course_student_id"`
	StudentCourseCourseID  uuid.UUID `gorm:"column:student_course_course_id;type:uuid;not null;uniqueIndex:uq_student_course" json:"student_course_course_id"`

	StudentCourseCreatedAt time.Time `gorm:"column:student_course_created_at;autoCreateTime" json:"student_course_created_at"`
}

func (EnrollmentModel) TableName() string {
	return "student_courses"
}
