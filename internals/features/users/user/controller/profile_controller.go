package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/features/users/user/dto"
	"almanar_backend/internals/features/users/user/model"
	helper "almanar_backend/internals/helpers"
	ossHelper "almanar_backend/internals/helpers/oss"
)

type ProfileController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService
}

func NewProfileController(db *gorm.DB, oss *ossHelper.OSSService) *ProfileController {
	return &ProfileController{DB: db, OSS: oss}
}

/* ======================= GET ME ======================= */
// GET /api/u/profile
func (h *ProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var row model.ProfileModel
	if err := h.DB.Where("profile_user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "الملف الشخصي غير موجود")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToProfileResponse(&row))
}

/* ======================= UPDATE (partial) ======================= */
// PUT /api/u/profile
func (h *ProfileController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	patch := map[string]interface{}{}
	if req.ProfileFullName != nil {
		patch["profile_full_name"] = *req.ProfileFullName
	}
	if req.ProfilePhone != nil {
		patch["profile_phone"] = *req.ProfilePhone
	}
	if req.ProfileBio != nil {
		patch["profile_bio"] = *req.ProfileBio
	}
	if len(patch) == 0 {
		return h.GetMine(c)
	}

	if err := h.DB.Model(&model.ProfileModel{}).
		Where("profile_user_id = ?", userID).
		Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر تحديث الملف الشخصي")
	}

	var updated model.ProfileModel
	if err := h.DB.Where("profile_user_id = ?", userID).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "تم تحديث الملف الشخصي", dto.ToProfileResponse(&updated))
}

/* ======================= AVATAR ======================= */
// POST /api/u/profile/avatar  (multipart field "avatar")
func (h *ProfileController) UploadAvatar(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if h.OSS == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "خدمة رفع الملفات غير متاحة حاليًا")
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "صورة الملف الشخصي مطلوبة")
	}

	url, err := h.OSS.UploadAvatarWebP(c.UserContext(), fh, "avatars", 512)
	if err != nil {
		log.Printf("[profile] avatar upload failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر رفع الصورة")
	}

	if err := h.DB.Model(&model.ProfileModel{}).
		Where("profile_user_id = ?", userID).
		Update("profile_avatar_url", url).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "تعذر حفظ رابط الصورة")
	}

	return helper.JsonUpdated(c, "تم تحديث الصورة", fiber.Map{"profile_avatar_url": url})
}
