package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"almanar_backend/internals/configs"
	database "almanar_backend/internals/databases"
	authModel "almanar_backend/internals/features/users/auth/model"
	userModel "almanar_backend/internals/features/users/user/model"
	helpers "almanar_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour

	qryTimeoutShort = 800 * time.Millisecond
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Roles & student linkage
========================== */

// getUserRoles merges users.role with user_roles grants. When the
// user_roles table is missing (probe) only the column applies.
func getUserRoles(ctx context.Context, db *gorm.DB, user userModel.UserModel) ([]string, error) {
	roles := []string{strings.ToLower(user.Role)}

	if !database.Meta.Ready || !database.Meta.HasUserRoles {
		return roles, nil
	}

	ctxR, cancel := context.WithTimeout(ctx, qryTimeoutShort)
	defer cancel()

	var extra []string
	if err := db.WithContext(ctxR).Raw(`
		SELECT user_role_name
		FROM user_roles
		WHERE user_role_user_id = ?::uuid AND deleted_at IS NULL
		GROUP BY user_role_name
	`, user.ID.String()).Scan(&extra).Error; err != nil {
		return roles, err
	}

	seen := map[string]struct{}{roles[0]: {}}
	for _, r := range extra {
		r = strings.ToLower(r)
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			roles = append(roles, r)
		}
	}
	return roles, nil
}

// fetchStudentID resolves the student row linked to this account, if any.
func fetchStudentID(db *gorm.DB, userID uuid.UUID) *uuid.UUID {
	ctx, cancel := context.WithTimeout(context.Background(), qryTimeoutShort)
	defer cancel()

	var id uuid.UUID
	err := db.WithContext(ctx).
		Table("students").
		Select("student_id").
		Where("student_user_id = ?", userID).
		Limit(1).
		Scan(&id).Error
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "does not exist") || strings.Contains(low, "undefined table") {
			return nil
		}
		log.Printf("[WARN] fetchStudentID: %v", err)
		return nil
	}
	if id == uuid.Nil {
		return nil
	}
	return &id
}

/* ==========================
   REGISTER
========================== */

type registerInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	// optional: course the student wants to join right away
	CourseID *uuid.UUID `json:"course_id"`
}

// Register creates the account, its student row and profile. The optional
// enrollment is best effort: a failure there is logged and the signup
// still succeeds.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
		Role:     "student",
	}
	if err := user.Validate(); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء الحساب، حاول لاحقًا")
	}
	user.Password = string(hash)

	if err := db.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helpers.JsonError(c, fiber.StatusBadRequest, "هذا البريد الإلكتروني مسجل مسبقًا")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء الحساب، حاول لاحقًا")
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = user.UserName
	}

	// Profile: best effort.
	if err := db.Create(&userModel.ProfileModel{
		ProfileUserID:   user.ID,
		ProfileFullName: fullName,
		ProfilePhone:    strptr(strings.TrimSpace(input.Phone)),
	}).Error; err != nil {
		log.Printf("[register] profile create failed: %v", err)
	}

	// Student row for the self-registered account.
	studentID := uuid.Nil
	if err := db.Raw(`
		INSERT INTO students (student_user_id, student_name, student_phone, student_email)
		VALUES (?, ?, ?, ?)
		RETURNING student_id
	`, user.ID, fullName, strptr(strings.TrimSpace(input.Phone)), user.Email).
		Scan(&studentID).Error; err != nil {
		log.Printf("[register] student create failed: %v", err)
	}

	// Optional enrollment: best effort, swallowed on failure.
	if input.CourseID != nil && *input.CourseID != uuid.Nil && studentID != uuid.Nil {
		if err := db.Exec(`
			INSERT INTO student_courses (student_course_student_id, student_course_course_id)
			VALUES (?, ?)
			ON CONFLICT (student_course_student_id, student_course_course_id) DO NOTHING
		`, studentID, *input.CourseID).Error; err != nil {
			log.Printf("[register] enrollment insert failed: %v", err)
		}
	}

	return helpers.JsonCreated(c, "تم إنشاء الحساب بنجاح", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
	})
}

/* ==========================
   LOGIN (username/email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "صيغة الطلب غير صحيحة")
	}
	input.Identifier = strings.TrimSpace(input.Identifier)
	if input.Identifier == "" || input.Password == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "اسم المستخدم وكلمة المرور مطلوبان")
	}

	var user userModel.UserModel
	if err := db.
		Where("email = ? OR user_name = ?", strings.ToLower(input.Identifier), input.Identifier).
		First(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "تم تعطيل هذا الحساب، تواصل مع الإدارة")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "اسم المستخدم أو كلمة المرور غير صحيحة")
	}

	roles, err := getUserRoles(c.Context(), db, user)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر تحميل صلاحيات الحساب")
	}

	return issueTokens(c, db, user, roles)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func buildAccessClaims(user userModel.UserModel, roles []string, studentID *uuid.UUID, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"roles":     roles,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	if studentID != nil {
		claims["student_id"] = studentID.String()
	}
	return claims
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel, roles []string) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()
	studentID := fetchStudentID(db, user.ID)

	accessClaims := buildAccessClaims(user, roles, studentID, now)
	refreshClaims := buildRefreshClaims(user.ID, now)

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(jwtSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء رمز الدخول")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(refreshSecret))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر إنشاء رمز التحديث")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	if err := db.Create(&authModel.RefreshTokenModel{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "تعذر حفظ جلسة الدخول")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	respUser := fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"roles":     roles,
	}
	if studentID != nil {
		respUser["student_id"] = *studentID
	}
	return helpers.JsonOK(c, "تم تسجيل الدخول بنجاح", fiber.Map{
		"user":         respUser,
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	// Blacklist the current access token until its natural expiry.
	if raw, ok := c.Locals("raw_token").(string); ok && raw != "" {
		exp := nowUTC().Add(accessTTLDefault)
		if claims, ok := c.Locals("jwt_claims").(jwt.MapClaims); ok {
			if v, ok := claims["exp"].(float64); ok {
				exp = time.Unix(int64(v), 0)
			}
		}
		if err := db.Create(&authModel.TokenBlacklistModel{
			Token:     raw,
			ExpiredAt: exp,
		}).Error; err != nil {
			log.Printf("[logout] blacklist insert failed: %v", err)
		}
	}

	// Drop the refresh token row, best effort.
	if refreshCookie := strings.TrimSpace(c.Cookies("refresh_token")); refreshCookie != "" {
		if secret, err := getRefreshSecret(); err == nil {
			h := computeRefreshHash(refreshCookie, secret)
			if err := db.Where("token_hash = ?", h).Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[logout] refresh delete failed: %v", err)
			}
		}
	}

	expireAuthCookies(c)
	return helpers.JsonOK(c, "تم تسجيل الخروج", nil)
}

func expireAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
		})
	}
}
