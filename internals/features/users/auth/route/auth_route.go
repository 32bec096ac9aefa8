package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/configs"
	"almanar_backend/internals/features/users/auth/controller"
	"almanar_backend/internals/features/users/auth/service"
	"almanar_backend/internals/middlewares"
	authMiddleware "almanar_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	public.Post("/refresh-token", ctrl.RefreshToken)
	public.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	public.Post("/reset-password", ctrl.ResetPassword)

	authed := app.Group("/api/u/auth", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
		BlacklistChecker:    service.IsTokenBlacklisted(db),
	}))
	authed.Get("/me", ctrl.Me)
	authed.Post("/logout", ctrl.Logout)
	authed.Post("/change-password", ctrl.ChangePassword)
}
