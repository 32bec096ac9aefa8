package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"almanar_backend/internals/configs"
)

// CorsMiddleware allows the web frontends; extra origins via CORS_ORIGINS.
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"https://almanar-academy.vercel.app",
	}
	if extra := configs.GetEnv("CORS_ORIGINS"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CSRF-Token",
		AllowCredentials: true,
	})
}
