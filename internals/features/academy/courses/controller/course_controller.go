package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/academy/courses/dto"
	"almanar_backend/internals/features/academy/courses/model"
	statsService "almanar_backend/internals/features/academy/stats/service"
	helper "almanar_backend/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/courses
func (h *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إنشاء الدورة")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonCreated(c, "تم إنشاء الدورة بنجاح", dto.ToCourseResponse(m))
}

/* ======================== GET BY ID ======================== */
// GET /api/u/courses/:id
func (h *CourseController) GetByID(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var row model.CourseModel
	if err := h.DB.Where("course_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدورة غير موجودة")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToCourseResponse(&row))
}

/* ======================== LIST ======================== */
// GET /api/u/courses?audience=&q=&page=&per_page=
//
// Non-admin callers only see public and women courses; private courses
// stay off the catalog.
func (h *CourseController) List(c *fiber.Ctx) error {
	var q dto.ListCourseQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "معاملات البحث غير صالحة")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.CourseModel{})

	if !helper.HasRole(c, "admin") {
		base = base.Where("course_audience <> ?", model.AudiencePrivate)
	}
	if q.Audience != nil && *q.Audience != "" {
		base = base.Where("course_audience = ?", *q.Audience)
	}
	if q.Q != nil && *q.Q != "" {
		like := fmt.Sprintf("%%%s%%", *q.Q)
		base = base.Where("(course_name ILIKE ? OR course_instructor ILIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.CourseModel
	if err := base.
		Order("course_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToCourseResponseList(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================== UPDATE (PUT, partial) ======================== */
// PUT /api/a/courses/:id
func (h *CourseController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.CourseModel
	if err := h.DB.Where("course_id = ?", idStr).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدورة غير موجودة")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	patch := map[string]interface{}{}
	if req.CourseName != nil {
		patch["course_name"] = *req.CourseName
	}
	if req.CourseInstructor != nil {
		patch["course_instructor"] = *req.CourseInstructor
	}
	if req.CourseSchedule != nil {
		patch["course_schedule"] = *req.CourseSchedule
	}
	if req.CourseLevel != nil {
		patch["course_level"] = *req.CourseLevel
	}
	if req.CourseLocation != nil {
		patch["course_location"] = *req.CourseLocation
	}
	if req.CourseFocus != nil {
		patch["course_focus"] = *req.CourseFocus
	}
	if req.CourseDescription != nil {
		patch["course_description"] = *req.CourseDescription
	}
	if req.CourseNotes != nil {
		patch["course_notes"] = *req.CourseNotes
	}
	if req.CourseAudience != nil {
		patch["course_audience"] = *req.CourseAudience
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "لا توجد تغييرات", dto.ToCourseResponse(&curr))
	}

	if err := h.DB.Model(&model.CourseModel{}).
		Where("course_id = ?", idStr).
		Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تحديث الدورة")
	}

	var updated model.CourseModel
	if err := h.DB.Where("course_id = ?", idStr).First(&updated).Error; err != nil {
		return helper.JsonUpdated(c, "تم تحديث الدورة", dto.ToCourseResponse(&curr))
	}
	return helper.JsonUpdated(c, "تم تحديث الدورة", dto.ToCourseResponse(&updated))
}

/* ======================== DELETE (cascade) ======================== */
// DELETE /api/a/courses/:id
//
// Dependency order inside one tx: attendance → enrollments → course.
func (h *CourseController) Delete(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM attendance WHERE attendance_course_id = ?`, idStr).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM student_courses WHERE student_course_course_id = ?`, idStr).Error; err != nil {
			return err
		}
		res := tx.Exec(`DELETE FROM courses WHERE course_id = ?`, idStr)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الدورة غير موجودة")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر حذف الدورة")
	}

	statsService.InvalidateOverview(c.UserContext())
	return helper.JsonDeleted(c, "تم حذف الدورة وكل ما يتعلق بها", fiber.Map{"id": idStr})
}
