package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"almanar_backend/internals/features/users/auth/service"
	userModel "almanar_backend/internals/features/users/user/model"
	helper "almanar_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// GET /api/u/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "الحساب غير موجود")
	}

	resp := fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"roles":     helper.GetRolesFromToken(c),
	}
	if sid, err := helper.GetStudentIDFromToken(c); err == nil && sid != uuid.Nil {
		resp["student_id"] = sid
	}
	return helper.JsonOK(c, "ok", resp)
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	return service.ForgotPassword(ac.DB, c)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	return service.ResetPassword(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}
