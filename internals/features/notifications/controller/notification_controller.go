package controller

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"almanar_backend/internals/features/notifications/dto"
	"almanar_backend/internals/features/notifications/model"
	helper "almanar_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

/* ======================= CREATE + FAN-OUT (admin) ======================= */
// POST /api/a/notifications
//
// The recipient rows are fanned out inside the same tx as the
// broadcast record, so a crash never leaves a half-delivered blast.
func (h *NotificationController) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if req.Type == "" {
		req.Type = model.TypeGeneral
	}
	if req.Priority == "" {
		req.Priority = model.PriorityNormal
	}
	if len(req.Channels) == 0 {
		req.Channels = []string{"in_app"}
	}

	targetRaw, err := sonic.Marshal(req.Target)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الجمهور غير صحيحة")
	}

	m := &model.NotificationModel{
		NotificationTitle:     strings.TrimSpace(req.Title),
		NotificationBody:      strings.TrimSpace(req.Body),
		NotificationType:      req.Type,
		NotificationPriority:  req.Priority,
		NotificationChannels:  pq.StringArray(req.Channels),
		NotificationTarget:    targetRaw,
		NotificationCreatedBy: &adminID,
	}

	var fanned int64
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		var res *gorm.DB
		switch req.Target.Type {
		case "all":
			res = tx.Exec(`
				INSERT INTO notification_recipients (notification_recipient_notification_id, notification_recipient_student_id)
				SELECT ?, student_id FROM students
				ON CONFLICT DO NOTHING
			`, m.NotificationID)
		case "course":
			res = tx.Exec(`
				INSERT INTO notification_recipients (notification_recipient_notification_id, notification_recipient_student_id)
				SELECT ?, student_course_student_id FROM student_courses
				WHERE student_course_course_id = ?
				ON CONFLICT DO NOTHING
			`, m.NotificationID, *req.Target.CourseID)
		case "students":
			ids := make([]string, 0, len(req.Target.StudentIDs))
			for _, id := range req.Target.StudentIDs {
				ids = append(ids, id.String())
			}
			res = tx.Exec(`
				INSERT INTO notification_recipients (notification_recipient_notification_id, notification_recipient_student_id)
				SELECT ?, unnest(?::uuid[])
				ON CONFLICT DO NOTHING
			`, m.NotificationID, pq.Array(ids))
		}
		if res.Error != nil {
			return res.Error
		}
		fanned = res.RowsAffected
		return nil
	})
	if txErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر إرسال الإشعار")
	}

	return helper.JsonCreated(c, "تم إرسال الإشعار", dto.NotificationResponse{
		NotificationID: m.NotificationID,
		Title:          m.NotificationTitle,
		Body:           m.NotificationBody,
		Type:           m.NotificationType,
		Priority:       m.NotificationPriority,
		Channels:       req.Channels,
		CreatedAt:      m.NotificationCreatedAt,
		Recipients:     fanned,
	})
}

/* ======================= LIST (admin) ======================= */
// GET /api/a/notifications
func (h *NotificationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.NotificationModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.NotificationModel
	if err := h.DB.
		Order("notification_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", list,
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= INBOX (student) ======================= */
// GET /api/u/notifications/mine?unread=true
func (h *NotificationController) ListMine(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	where := "nr.notification_recipient_student_id = ?"
	args := []interface{}{studentID}
	if strings.EqualFold(c.Query("unread"), "true") {
		where += " AND nr.notification_recipient_read = FALSE"
	}

	var total int64
	if err := h.DB.Raw(`
		SELECT COUNT(1)
		FROM notification_recipients nr
		WHERE `+where, args...).Scan(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var items []dto.InboxItem
	queryArgs := append(args, paging.Limit, paging.Offset)
	if err := h.DB.Raw(`
		SELECT n.notification_id, n.notification_title, n.notification_body,
		       n.notification_type, n.notification_priority, n.notification_created_at,
		       nr.notification_recipient_read, nr.notification_recipient_read_at
		FROM notification_recipients nr
		JOIN notifications n ON n.notification_id = nr.notification_recipient_notification_id
		WHERE `+where+`
		ORDER BY n.notification_created_at DESC
		LIMIT ? OFFSET ?
	`, queryArgs...).Scan(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []dto.InboxItem{}
	}

	return helper.JsonList(c, "ok", items,
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= MARK READ (student) ======================= */
// POST /api/u/notifications/:id/read
func (h *NotificationController) MarkRead(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "المعرّف مطلوب")
	}

	now := time.Now()
	res := h.DB.Model(&model.NotificationRecipientModel{}).
		Where("notification_recipient_notification_id = ? AND notification_recipient_student_id = ?", idStr, studentID).
		Updates(map[string]interface{}{
			"notification_recipient_read":    true,
			"notification_recipient_read_at": now,
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تحديث حالة الإشعار")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "الإشعار غير موجود")
	}

	return helper.JsonUpdated(c, "تم تعليم الإشعار كمقروء", fiber.Map{"id": idStr})
}
