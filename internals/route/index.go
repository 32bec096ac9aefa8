package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"almanar_backend/internals/configs"
	"almanar_backend/internals/constants"
	attendanceRoute "almanar_backend/internals/features/academy/attendance/route"
	courseRoute "almanar_backend/internals/features/academy/courses/route"
	enrollmentRoute "almanar_backend/internals/features/academy/enrollments/route"
	statsRoute "almanar_backend/internals/features/academy/stats/route"
	studentRoute "almanar_backend/internals/features/academy/students/route"
	debtRoute "almanar_backend/internals/features/finance/debts/route"
	paymentRoute "almanar_backend/internals/features/finance/payments/route"
	notificationRoute "almanar_backend/internals/features/notifications/route"
	authRoute "almanar_backend/internals/features/users/auth/route"
	authService "almanar_backend/internals/features/users/auth/service"
	userRoute "almanar_backend/internals/features/users/user/route"
	ossHelper "almanar_backend/internals/helpers/oss"
	authMw "almanar_backend/internals/middlewares/auth"
)

// SetupRoutes mounts everything:
//
//	/api     → public (webhooks)
//	/api/u   → any authenticated user
//	/api/a   → admins only
func SetupRoutes(app *fiber.App, db *gorm.DB, oss *ossHelper.OSSService) {
	BaseRoutes(app, db)
	authRoute.AuthRoutes(app, db)

	api := app.Group("/api")
	paymentRoute.PaymentPublicRoutes(api, db)

	jwt := authMw.AuthJWT(authMw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    authService.IsTokenBlacklisted(db),
		AllowCookieFallback: true,
	})

	user := app.Group("/api/u", jwt)
	userRoute.UserRoutes(user, db, oss)
	courseRoute.CourseUserRoutes(user, db)
	enrollmentRoute.EnrollmentUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)
	statsRoute.StatsUserRoutes(user, db)
	debtRoute.DebtUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db, oss)
	notificationRoute.NotificationUserRoutes(user, db)

	admin := app.Group("/api/a", jwt,
		authMw.RequireRoles(constants.RoleErrorAdmin("لوحة الإدارة"), constants.RoleAdmin))
	courseRoute.CourseAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	enrollmentRoute.EnrollmentAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
	statsRoute.StatsAdminRoutes(admin, db)
	debtRoute.DebtAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	notificationRoute.NotificationAdminRoutes(admin, db)
}
