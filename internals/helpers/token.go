package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the auth middleware.
const (
	LocUserID    = "user_id"
	LocRoles     = "roles"
	LocStudentID = "student_id"
)

// GetUserIDFromToken returns the authenticated user id from request locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "تسجيل الدخول مطلوب")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "رمز الدخول غير صالح")
	}
	return id, nil
}

// GetStudentIDFromToken returns the student row linked to the session, when
// the logged-in account belongs to a student.
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocStudentID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "هذا الحساب غير مرتبط بملف طالب")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "هذا الحساب غير مرتبط بملف طالب")
	}
	return id, nil
}

// GetRolesFromToken returns the role list from request locals.
func GetRolesFromToken(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRoles).(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func HasRole(c *fiber.Ctx, role string) bool {
	for _, r := range GetRolesFromToken(c) {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
