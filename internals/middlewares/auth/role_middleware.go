package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "almanar_backend/internals/helpers"
)

// RequireRoles denies the request unless the token carries one of the
// given roles. Denial is a 403 with a localized message, the JSON
// equivalent of the redirect-on-denial the web pages do.
func RequireRoles(message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, r := range roles {
			if helper.HasRole(c, r) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}
