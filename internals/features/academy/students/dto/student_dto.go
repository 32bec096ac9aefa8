package dto

import (
	"time"

	"github.com/google/uuid"

	"almanar_backend/internals/features/academy/students/model"
)

type CreateStudentRequest struct {
	StudentName  string      `json:"student_name" validate:"required,min=2,max=120"`
	StudentPhone *string     `json:"student_phone" validate:"omitempty,max=30"`
	StudentEmail *string     `json:"student_email" validate:"omitempty,email"`
	CourseIDs    []uuid.UUID `json:"course_ids" validate:"omitempty,dive,required"`
}

type UpdateStudentRequest struct {
	StudentName  *string `json:"student_name" validate:"omitempty,min=2,max=120"`
	StudentPhone *string `json:"student_phone" validate:"omitempty,max=30"`
	StudentEmail *string `json:"student_email" validate:"omitempty,email"`
}

type ListStudentQuery struct {
	Q        *string    `query:"q"`
	CourseID *uuid.UUID `query:"course_id"`
}

type StudentResponse struct {
	StudentID     uuid.UUID  `json:"student_id"`
	StudentUserID *uuid.UUID `json:"student_user_id,omitempty"`
	StudentName   string     `json:"student_name"`
	StudentPhone  *string    `json:"student_phone,omitempty"`
	StudentEmail  *string    `json:"student_email,omitempty"`
	CreatedAt     time.Time  `json:"student_created_at"`
}

// StudentDetailResponse adds the enrollment list and the financial
// summary shown on the admin student page.
type StudentDetailResponse struct {
	StudentResponse
	Courses   []EnrolledCourse `json:"courses"`
	TotalOwed float64          `json:"total_owed"`
	TotalPaid float64          `json:"total_paid"`
	Remaining float64          `json:"remaining"`
}

type EnrolledCourse struct {
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func ToStudentResponse(m *model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:     m.StudentID,
		StudentUserID: m.StudentUserID,
		StudentName:   m.StudentName,
		StudentPhone:  m.StudentPhone,
		StudentEmail:  m.StudentEmail,
		CreatedAt:     m.StudentCreatedAt,
	}
}

func ToStudentResponseList(list []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToStudentResponse(&list[i]))
	}
	return out
}
