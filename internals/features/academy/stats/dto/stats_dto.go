package dto

import "almanar_backend/internals/features/academy/stats/service"

// OverviewResponse is the admin dashboard payload.
type OverviewResponse struct {
	TotalStudents int64                    `json:"total_students"`
	TotalCourses  int64                    `json:"total_courses"`
	WindowDates   []string                 `json:"window_dates"`
	Courses       []service.CourseOverview `json:"courses"`
	FromCache     bool                     `json:"from_cache"`
}

// MySummaryResponse is a student's own attendance page.
type MySummaryResponse struct {
	Courses []service.StudentCourseSummary `json:"courses"`
}
