package dto

import (
	"github.com/google/uuid"

	"almanar_backend/internals/features/academy/courses/model"
)

// ================== REQUEST ==================
type CreateCourseRequest struct {
	CourseName        string  `json:"course_name" validate:"required,min=2,max=150"`
	CourseInstructor  *string `json:"course_instructor" validate:"omitempty,max=100"`
	CourseSchedule    *string `json:"course_schedule" validate:"omitempty,max=150"`
	CourseLevel       *string `json:"course_level" validate:"omitempty,max=50"`
	CourseLocation    *string `json:"course_location" validate:"omitempty,max=150"`
	CourseFocus       *string `json:"course_focus"`
	CourseDescription *string `json:"course_description"`
	CourseNotes       *string `json:"course_notes"`
	CourseAudience    string  `json:"course_audience" validate:"omitempty,oneof=public private women"`
}

type UpdateCourseRequest struct {
	CourseName        *string `json:"course_name" validate:"omitempty,min=2,max=150"`
	CourseInstructor  *string `json:"course_instructor" validate:"omitempty,max=100"`
	CourseSchedule    *string `json:"course_schedule" validate:"omitempty,max=150"`
	CourseLevel       *string `json:"course_level" validate:"omitempty,max=50"`
	CourseLocation    *string `json:"course_location" validate:"omitempty,max=150"`
	CourseFocus       *string `json:"course_focus"`
	CourseDescription *string `json:"course_description"`
	CourseNotes       *string `json:"course_notes"`
	CourseAudience    *string `json:"course_audience" validate:"omitempty,oneof=public private women"`
}

type ListCourseQuery struct {
	Audience *string `query:"audience"`
	Q        *string `query:"q"`
}

// ================== RESPONSE ==================
type CourseResponse struct {
	CourseID          uuid.UUID `json:"course_id"`
	CourseName        string    `json:"course_name"`
	CourseInstructor  *string   `json:"course_instructor,omitempty"`
	CourseSchedule    *string   `json:"course_schedule,omitempty"`
	CourseLevel       *string   `json:"course_level,omitempty"`
	CourseLocation    *string   `json:"course_location,omitempty"`
	CourseFocus       *string   `json:"course_focus,omitempty"`
	CourseDescription *string   `json:"course_description,omitempty"`
	CourseNotes       *string   `json:"course_notes,omitempty"`
	CourseAudience    string    `json:"course_audience"`
	CourseCreatedAt   string    `json:"course_created_at"`
}

// ================ CONVERSION =================
func (r *CreateCourseRequest) ToModel() *model.CourseModel {
	audience := r.CourseAudience
	if audience == "" {
		audience = model.AudiencePublic
	}
	return &model.CourseModel{
		CourseName:        r.CourseName,
		CourseInstructor:  r.CourseInstructor,
		CourseSchedule:    r.CourseSchedule,
		CourseLevel:       r.CourseLevel,
		CourseLocation:    r.CourseLocation,
		CourseFocus:       r.CourseFocus,
		CourseDescription: r.CourseDescription,
		CourseNotes:       r.CourseNotes,
		CourseAudience:    audience,
	}
}

func ToCourseResponse(m *model.CourseModel) *CourseResponse {
	return &CourseResponse{
		CourseID:          m.CourseID,
		CourseName:        m.CourseName,
		CourseInstructor:  m.CourseInstructor,
		CourseSchedule:    m.CourseSchedule,
		CourseLevel:       m.CourseLevel,
		CourseLocation:    m.CourseLocation,
		CourseFocus:       m.CourseFocus,
		CourseDescription: m.CourseDescription,
		CourseNotes:       m.CourseNotes,
		CourseAudience:    m.CourseAudience,
		CourseCreatedAt:   m.CourseCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToCourseResponseList(models []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToCourseResponse(&models[i]))
	}
	return out
}
