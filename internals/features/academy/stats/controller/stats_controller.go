package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/stats/dto"
	"almanar_backend/internals/features/academy/stats/service"
	helper "almanar_backend/internals/helpers"
)

const (
	sessionCount    = 10
	sessionStepDays = 2
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

/* ======================= ADMIN OVERVIEW ======================= */
// GET /api/a/stats/overview
//
// Redis-cached; writers invalidate the key so the dashboard never
// shows a stale roster after a mark or a delete.
func (h *StatsController) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var cached dto.OverviewResponse
	if service.CachedOverview(ctx, &cached) {
		cached.FromCache = true
		return helper.JsonOK(c, "ok", cached)
	}

	window := service.SessionWindow(time.Now(), sessionCount, sessionStepDays)

	resp := dto.OverviewResponse{WindowDates: make([]string, 0, len(window))}
	for _, d := range window {
		resp.WindowDates = append(resp.WindowDates, d.Format("2006-01-02"))
	}

	if err := h.DB.Raw(`SELECT COUNT(1) FROM students`).Scan(&resp.TotalStudents).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Raw(`SELECT COUNT(1) FROM courses`).Scan(&resp.TotalCourses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	type courseRow struct {
		CourseID   uuid.UUID `gorm:"column:course_id"`
		CourseName string    `gorm:"column:course_name"`
		Enrolled   int       `gorm:"column:enrolled"`
	}
	var courses []courseRow
	if err := h.DB.Raw(`
		SELECT c.course_id, c.course_name,
		       (SELECT COUNT(1) FROM student_courses sc
		        WHERE sc.student_course_course_id = c.course_id) AS enrolled
		FROM courses c
		ORDER BY c.course_name ASC
	`).Scan(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	marks, err := h.loadMarks(window, nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp.Courses = make([]service.CourseOverview, 0, len(courses))
	for _, cr := range courses {
		resp.Courses = append(resp.Courses,
			service.BuildCourseOverview(cr.CourseID, cr.CourseName, cr.Enrolled, window, marks))
	}

	service.StoreOverview(ctx, resp)
	return helper.JsonOK(c, "ok", resp)
}

/* ======================= STUDENT SUMMARY ======================= */
// GET /api/u/stats/mine
func (h *StatsController) MySummary(c *fiber.Ctx) error {
	sid, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	type courseRow struct {
		CourseID   uuid.UUID `gorm:"column:course_id"`
		CourseName string    `gorm:"column:course_name"`
	}
	var courses []courseRow
	if err := h.DB.Raw(`
		SELECT c.course_id, c.course_name
		FROM student_courses sc
		JOIN courses c ON c.course_id = sc.student_course_course_id
		WHERE sc.student_course_student_id = ?
		ORDER BY c.course_name ASC
	`, sid).Scan(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	marks, err := h.loadMarks(nil, &sid)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.MySummaryResponse{Courses: make([]service.StudentCourseSummary, 0, len(courses))}
	for _, cr := range courses {
		resp.Courses = append(resp.Courses,
			service.BuildStudentSummary(sid, cr.CourseID, cr.CourseName, marks))
	}

	return helper.JsonOK(c, "ok", resp)
}

// loadMarks pulls attendance rows, optionally bounded to a session
// window and/or one student.
func (h *StatsController) loadMarks(window []time.Time, studentID *uuid.UUID) ([]service.Mark, error) {
	type markRow struct {
		StudentID uuid.UUID `gorm:"column:attendance_student_id"`
		CourseID  uuid.UUID `gorm:"column:attendance_course_id"`
		Date      time.Time `gorm:"column:attendance_date"`
		Status    string    `gorm:"column:attendance_status"`
	}

	q := h.DB.Table("attendance").
		Select("attendance_student_id, attendance_course_id, attendance_date, attendance_status")
	if len(window) > 0 {
		q = q.Where("attendance_date BETWEEN ? AND ?", window[0], window[len(window)-1])
	}
	if studentID != nil {
		q = q.Where("attendance_student_id = ?", *studentID)
	}

	var rows []markRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	marks := make([]service.Mark, 0, len(rows))
	for _, r := range rows {
		marks = append(marks, service.Mark{
			StudentID: r.StudentID,
			CourseID:  r.CourseID,
			Date:      r.Date,
			Status:    r.Status,
		})
	}
	return marks, nil
}
