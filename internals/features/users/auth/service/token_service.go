package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "almanar_backend/internals/features/users/auth/model"
	userModel "almanar_backend/internals/features/users/user/model"
	helpers "almanar_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
//
// Cookie based, with rotation: the presented refresh token must exist
// (hashed) in the DB, gets deleted, and a fresh pair is issued.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "لا يوجد رمز تحديث")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "رمز التحديث غير صالح")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "رمز التحديث غير صالح")
	}

	h := computeRefreshHash(refreshCookie, refreshSecret)
	var exists bool
	if err := db.Raw(`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE token_hash = ?)`, h).
		Scan(&exists).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر التحقق من الجلسة")
	}
	if !exists {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "رمز التحديث غير معروف")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "الحساب غير موجود")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "تم تعطيل هذا الحساب")
	}

	roles, err := getUserRoles(c.Context(), db, user)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر تحميل صلاحيات الحساب")
	}

	// ROTATE: the old token is single use.
	if err := db.Where("token_hash = ?", h).Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	return issueTokens(c, db, user, roles)
}

// IsTokenBlacklisted reports whether the raw access token was revoked by a
// logout. Fails open: a DB error is not worth blocking every request for.
func IsTokenBlacklisted(db *gorm.DB) func(string) (bool, error) {
	return func(rawToken string) (bool, error) {
		var exists bool
		err := db.Raw(`SELECT EXISTS(
		                 SELECT 1 FROM token_blacklist
		                 WHERE token = ? AND deleted_at IS NULL
		               )`, rawToken).Scan(&exists).Error
		if err != nil {
			log.Printf("[blacklist] check failed: %v", err)
			return false, err
		}
		return exists, nil
	}
}
