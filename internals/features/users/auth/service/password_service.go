package service

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authModel "almanar_backend/internals/features/users/auth/model"
	userModel "almanar_backend/internals/features/users/user/model"
	helper "almanar_backend/internals/helpers"
)

const resetTokenTTL = 30 * time.Minute

// ========================== FORGOT PASSWORD ==========================
// POST /api/auth/forgot-password
//
// Always answers OK so the endpoint cannot be used to enumerate emails.
// Delivery is owned by the mail collaborator; here the token is logged.
func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "البريد الإلكتروني مطلوب")
	}

	okResp := func() error {
		return helper.JsonOK(c, "إذا كان البريد مسجلاً لدينا فستصلك رسالة لإعادة التعيين", nil)
	}

	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return okResp()
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء رمز إعادة التعيين")
	}
	token := hex.EncodeToString(raw)

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := db.Create(&authModel.PasswordResetTokenModel{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(token, refreshSecret),
		ExpiresAt: nowUTC().Add(resetTokenTTL),
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء رمز إعادة التعيين")
	}

	// console "mail" until an email provider is wired
	log.Printf("[MAIL] password reset for %s: token=%s (valid %s)", email, token, resetTokenTTL)

	return okResp()
}

// ========================== RESET PASSWORD ==========================
// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if len(input.NewPassword) < 8 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "كلمة المرور يجب ألا تقل عن ٨ أحرف")
	}

	var user userModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "رمز إعادة التعيين غير صالح")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	h := computeRefreshHash(strings.TrimSpace(input.Token), refreshSecret)

	var rt authModel.PasswordResetTokenModel
	if err := db.
		Where("user_id = ? AND token_hash = ? AND used_at IS NULL AND expires_at > ?", user.ID, h, nowUTC()).
		First(&rt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "رمز إعادة التعيين غير صالح أو منتهي")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	now := nowUTC()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", user.ID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&authModel.PasswordResetTokenModel{}).
			Where("id = ?", rt.ID).
			Update("used_at", now).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	return helper.JsonUpdated(c, "تم تغيير كلمة المرور بنجاح", nil)
}

// ========================== CHANGE PASSWORD ==========================
// POST /api/u/auth/change-password (authenticated)
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	if len(input.NewPassword) < 8 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "كلمة المرور يجب ألا تقل عن ٨ أحرف")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "الحساب غير موجود")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "كلمة المرور الحالية غير صحيحة")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", string(hash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	return helper.JsonUpdated(c, "تم تغيير كلمة المرور بنجاح", nil)
}
