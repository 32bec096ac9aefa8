package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	statsService "almanar_backend/internals/features/academy/stats/service"
	"almanar_backend/internals/features/academy/students/dto"
	"almanar_backend/internals/features/academy/students/model"
	"almanar_backend/internals/features/academy/students/service"
	helper "almanar_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/students
//
// Optional course_ids enroll the student in the same tx.
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := &model.StudentModel{
		StudentName:  strings.TrimSpace(req.StudentName),
		StudentPhone: req.StudentPhone,
		StudentEmail: req.StudentEmail,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for _, courseID := range req.CourseIDs {
			if err := tx.Exec(`
				INSERT INTO student_courses (student_course_student_id, student_course_course_id)
				VALUES (?, ?)
				ON CONFLICT DO NOTHING
			`, m.StudentID, courseID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إنشاء الطالب")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonCreated(c, "تم إنشاء الطالب بنجاح", dto.ToStudentResponse(m))
}

/* ======================== GET BY ID (detail) ======================== */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var row model.StudentModel
	if err := h.DB.Where("student_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الطالب غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	detail := dto.StudentDetailResponse{StudentResponse: dto.ToStudentResponse(&row)}

	// Enrollments with course names.
	var courses []dto.EnrolledCourse
	if err := h.DB.Raw(`
		SELECT c.course_id, c.course_name, sc.student_course_created_at AS enrolled_at
		FROM student_courses sc
		JOIN courses c ON c.course_id = sc.student_course_course_id
		WHERE sc.student_course_student_id = ?
		ORDER BY sc.student_course_created_at DESC
	`, row.StudentID).Scan(&courses).Error; err == nil {
		detail.Courses = courses
	} else {
		detail.Courses = []dto.EnrolledCourse{}
	}

	// Financial summary from the debt ledger.
	var fin struct {
		TotalOwed float64
		TotalPaid float64
	}
	if err := h.DB.Raw(`
		SELECT COALESCE(SUM(debt_owed), 0) AS total_owed,
		       COALESCE(SUM(debt_paid), 0) AS total_paid
		FROM debts
		WHERE debt_student_id = ?
	`, row.StudentID).Scan(&fin).Error; err == nil {
		detail.TotalOwed = fin.TotalOwed
		detail.TotalPaid = fin.TotalPaid
		remaining := fin.TotalOwed - fin.TotalPaid
		if remaining < 0 {
			remaining = 0
		}
		detail.Remaining = remaining
	}

	return helper.JsonOK(c, "ok", detail)
}

/* ======================== LIST ======================== */
// GET /api/a/students?q=&course_id=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "معاملات البحث غير صالحة")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.StudentModel{})

	if q.Q != nil && *q.Q != "" {
		like := fmt.Sprintf("%%%s%%", *q.Q)
		base = base.Where("(student_name ILIKE ? OR student_phone ILIKE ? OR student_email ILIKE ?)", like, like, like)
	}
	if q.CourseID != nil {
		base = base.Where(`student_id IN (
			SELECT student_course_student_id FROM student_courses
			WHERE student_course_course_id = ?
		)`, *q.CourseID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentModel
	if err := base.
		Order("student_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToStudentResponseList(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================== UPDATE ======================== */
// PUT /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := map[string]interface{}{}
	if req.StudentName != nil {
		patch["student_name"] = strings.TrimSpace(*req.StudentName)
	}
	if req.StudentPhone != nil {
		patch["student_phone"] = *req.StudentPhone
	}
	if req.StudentEmail != nil {
		patch["student_email"] = *req.StudentEmail
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "لا توجد حقول للتحديث")
	}

	res := h.DB.Model(&model.StudentModel{}).
		Where("student_id = ?", idStr).
		Updates(patch)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تحديث الطالب")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الطالب غير موجود")
	}

	var updated model.StudentModel
	if err := h.DB.Where("student_id = ?", idStr).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "تم تحديث بيانات الطالب", dto.ToStudentResponse(&updated))
}

/* ======================== DELETE (cascade) ======================== */
// DELETE /api/a/students/:id
//
// Dependency order inside one tx:
// attendance → enrollments → debts/payment requests → student.
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف غير صالح")
	}

	if err := service.DeleteStudentCascade(h.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الطالب غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر حذف الطالب")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonDeleted(c, "تم حذف الطالب وكل ما يتعلق به", fiber.Map{"id": id})
}
