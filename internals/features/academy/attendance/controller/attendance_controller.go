package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	database "almanar_backend/internals/databases"
	"almanar_backend/internals/features/academy/attendance/dto"
	"almanar_backend/internals/features/academy/attendance/model"
	"almanar_backend/internals/features/academy/attendance/service"
	statsService "almanar_backend/internals/features/academy/stats/service"
	helper "almanar_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

func timeNowDate() string {
	return time.Now().Format("2006-01-02")
}

// Reads branch on the schema probe the same way Mark's upsert does:
// deployments that predate the reason column must not select it.
func sheetReasonExpr() string {
	if database.Meta.HasAttendanceReason {
		return "a.attendance_reason"
	}
	return "NULL"
}

func historyColumns() []string {
	cols := []string{
		"attendance_id",
		"attendance_student_id",
		"attendance_course_id",
		"attendance_date",
		"attendance_status",
		"attendance_created_at",
		"attendance_updated_at",
	}
	if database.Meta.HasAttendanceReason {
		cols = append(cols, "attendance_reason")
	}
	return cols
}

/* ======================= MARK ======================= */
// POST /api/a/attendance
//
// One call covers mark, re-mark, toggle-off and excuse updates; the
// state machine decides what ends up in the table.
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	day, err := dto.ParseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة التاريخ غير صحيحة")
	}

	// Marks only make sense for enrolled students.
	var enrolled int64
	if err := h.DB.Raw(`
		SELECT COUNT(1) FROM student_courses
		WHERE student_course_student_id = ? AND student_course_course_id = ?
	`, req.StudentID, req.CourseID).Scan(&enrolled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if enrolled == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الطالب غير مسجل في هذه الدورة")
	}

	var curr model.AttendanceModel
	currKind := service.KindUnset
	findErr := h.DB.Where(
		"attendance_student_id = ? AND attendance_course_id = ? AND attendance_date = ?",
		req.StudentID, req.CourseID, day,
	).First(&curr).Error
	switch {
	case findErr == nil:
		currKind = service.KindFromStored(curr.AttendanceStatus)
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		// no row yet
	default:
		return fiber.NewError(fiber.StatusInternalServerError, findErr.Error())
	}

	next, err := service.Apply(currKind, service.Kind(req.Status), req.Reason)
	if err != nil {
		return err
	}

	if !service.Persistable(next) {
		res := h.DB.Exec(`
			DELETE FROM attendance
			WHERE attendance_student_id = ? AND attendance_course_id = ? AND attendance_date = ?
		`, req.StudentID, req.CourseID, day)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "تعذر حذف علامة الحضور")
		}
		statsService.InvalidateOverview(c.UserContext())
		return helper.JsonDeleted(c, "تمت إزالة علامة الحضور", fiber.Map{
			"student_id": req.StudentID,
			"course_id":  req.CourseID,
			"date":       req.Date,
			"status":     string(service.KindUnset),
		})
	}

	var reason *string
	if next == service.KindExcused {
		r := strings.TrimSpace(req.Reason)
		reason = &r
	}

	// Some deployments predate the reason column; the probe decides
	// which upsert shape is safe.
	if database.Meta.HasAttendanceReason {
		err = h.DB.Exec(`
			INSERT INTO attendance (attendance_student_id, attendance_course_id, attendance_date, attendance_status, attendance_reason)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (attendance_student_id, attendance_course_id, attendance_date)
			DO UPDATE SET attendance_status = EXCLUDED.attendance_status,
			              attendance_reason = EXCLUDED.attendance_reason,
			              attendance_updated_at = NOW()
		`, req.StudentID, req.CourseID, day, service.StoredStatus(next), reason).Error
	} else {
		err = h.DB.Exec(`
			INSERT INTO attendance (attendance_student_id, attendance_course_id, attendance_date, attendance_status)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (attendance_student_id, attendance_course_id, attendance_date)
			DO UPDATE SET attendance_status = EXCLUDED.attendance_status,
			              attendance_updated_at = NOW()
		`, req.StudentID, req.CourseID, day, service.StoredStatus(next)).Error
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر حفظ علامة الحضور")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonUpdated(c, "تم حفظ الحضور", dto.AttendanceCellResponse{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      req.Date,
		Status:    service.StoredStatus(next),
		Reason:    reason,
	})
}

/* ======================= SHEET ======================= */
// GET /api/a/attendance/course/:course_id/sheet?date=YYYY-MM-DD
//
// The full roster with that day's marks; unmarked students come back
// as "unset".
func (h *AttendanceController) Sheet(c *fiber.Ctx) error {
	courseID := strings.TrimSpace(c.Params("course_id"))
	if courseID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "معرّف الدورة مطلوب")
	}
	dateStr := strings.TrimSpace(c.Query("date"))
	if dateStr == "" {
		dateStr = timeNowDate()
	}
	day, err := dto.ParseDate(dateStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة التاريخ غير صحيحة")
	}

	var rows []dto.SheetRow
	if err := h.DB.Raw(`
		SELECT s.student_id,
		       s.student_name,
		       COALESCE(a.attendance_status, 'unset') AS status,
		       `+sheetReasonExpr()+` AS reason
		FROM student_courses sc
		JOIN students s ON s.student_id = sc.student_course_student_id
		LEFT JOIN attendance a
		       ON a.attendance_student_id = s.student_id
		      AND a.attendance_course_id = sc.student_course_course_id
		      AND a.attendance_date = ?
		WHERE sc.student_course_course_id = ?
		ORDER BY s.student_name ASC
	`, day, courseID).Scan(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []dto.SheetRow{}
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"course_id": courseID,
		"date":      dateStr,
		"rows":      rows,
	})
}

/* ======================= HISTORY (student) ======================= */
// GET /api/u/attendance/mine?course_id=
func (h *AttendanceController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	q := h.DB.Model(&model.AttendanceModel{}).
		Select(historyColumns()).
		Where("attendance_student_id = ?", studentID)
	if courseID := strings.TrimSpace(c.Query("course_id")); courseID != "" {
		if _, err := uuid.Parse(courseID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "معرّف الدورة غير صالح")
		}
		q = q.Where("attendance_course_id = ?", courseID)
	}

	var list []model.AttendanceModel
	if err := q.Order("attendance_date DESC").Limit(200).Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.AttendanceCellResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.ToCellResponse(&list[i]))
	}
	return helper.JsonOK(c, "ok", out)
}
