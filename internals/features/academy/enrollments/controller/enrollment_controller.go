package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	statsService "almanar_backend/internals/features/academy/stats/service"
	helper "almanar_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

type enrollRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
}

/* ======================= ENROLL ======================= */
// POST /api/a/enrollments
//
// Idempotent: re-enrolling an already-enrolled student changes nothing.
func (h *EnrollmentController) Enroll(c *fiber.Ctx) error {
	var req enrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := h.DB.Exec(`
		INSERT INTO student_courses (student_course_student_id, student_course_course_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, req.StudentID, req.CourseID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تسجيل الطالب في الدورة")
	}

	if res.RowsAffected == 0 {
		return helper.JsonOK(c, "الطالب مسجل في الدورة مسبقًا", fiber.Map{
			"student_id": req.StudentID,
			"course_id":  req.CourseID,
		})
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonCreated(c, "تم تسجيل الطالب في الدورة", fiber.Map{
		"student_id": req.StudentID,
		"course_id":  req.CourseID,
	})
}

/* ======================= UNENROLL ======================= */
// DELETE /api/a/enrollments?student_id=&course_id=
//
// Attendance history for the pair is removed with the enrollment.
func (h *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	studentID := strings.TrimSpace(c.Query("student_id"))
	courseID := strings.TrimSpace(c.Query("course_id"))
	if studentID == "" || courseID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "معرّف الطالب ومعرّف الدورة مطلوبان")
	}

	var removed int64
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			DELETE FROM attendance
			WHERE attendance_student_id = ? AND attendance_course_id = ?
		`, studentID, courseID).Error; err != nil {
			return err
		}
		res := tx.Exec(`
			DELETE FROM student_courses
			WHERE student_course_student_id = ? AND student_course_course_id = ?
		`, studentID, courseID)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إلغاء تسجيل الطالب")
	}
	if removed == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الطالب غير مسجل في هذه الدورة")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonDeleted(c, "تم إلغاء تسجيل الطالب من الدورة", fiber.Map{
		"student_id": studentID,
		"course_id":  courseID,
	})
}

/* ======================= LIST BY COURSE ======================= */
// GET /api/a/enrollments/course/:course_id
func (h *EnrollmentController) ListByCourse(c *fiber.Ctx) error {
	courseID := strings.TrimSpace(c.Params("course_id"))
	if courseID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "معرّف الدورة مطلوب")
	}

	type row struct {
		StudentID   uuid.UUID `json:"student_id" gorm:"column:student_id"`
		StudentName string    `json:"student_name" gorm:"column:student_name"`
		EnrolledAt  time.Time `json:"enrolled_at" gorm:"column:enrolled_at"`
	}
	var rows []row
	if err := h.DB.Raw(`
		SELECT s.student_id, s.student_name, sc.student_course_created_at AS enrolled_at
		FROM student_courses sc
		JOIN students s ON s.student_id = sc.student_course_student_id
		WHERE sc.student_course_course_id = ?
		ORDER BY s.student_name ASC
	`, courseID).Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []row{}
	}

	return helper.JsonOK(c, "ok", rows)
}

/* ======================= MY COURSES ======================= */
// GET /api/u/enrollments/mine
//
// Uses the student_id claim hydrated by the auth middleware.
func (h *EnrollmentController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	type row struct {
		CourseID         uuid.UUID `json:"course_id" gorm:"column:course_id"`
		CourseName       string    `json:"course_name" gorm:"column:course_name"`
		CourseInstructor *string   `json:"course_instructor,omitempty" gorm:"column:course_instructor"`
		CourseSchedule   *string   `json:"course_schedule,omitempty" gorm:"column:course_schedule"`
		EnrolledAt       time.Time `json:"enrolled_at" gorm:"column:enrolled_at"`
	}
	var rows []row
	if err := h.DB.Raw(`
		SELECT c.course_id, c.course_name, c.course_instructor, c.course_schedule,
		       sc.student_course_created_at AS enrolled_at
		FROM student_courses sc
		JOIN courses c ON c.course_id = sc.student_course_course_id
		WHERE sc.student_course_student_id = ?
		ORDER BY sc.student_course_created_at DESC
	`, studentID).Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []row{}
	}

	return helper.JsonOK(c, "ok", rows)
}
