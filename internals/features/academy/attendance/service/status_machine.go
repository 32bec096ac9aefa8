package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Kind is the mark state for one (student, course, date) cell.
type Kind string

const (
	KindUnset         Kind = "unset"
	KindPresent       Kind = "present"
	KindAbsent        Kind = "absent"
	KindPendingExcuse Kind = "pending_excuse"
	KindExcused       Kind = "excused"
)

// KindFromStored maps a persisted status column back to a Kind. An
// absent row is KindUnset.
func KindFromStored(status string) Kind {
	switch status {
	case "present":
		return KindPresent
	case "absent":
		return KindAbsent
	case "excused":
		return KindExcused
	default:
		return KindUnset
	}
}

// Apply computes the next state when the caller selects a status.
// Selecting the current status again toggles the cell back to unset.
// An excused selection with an empty reason stays pending and is
// rejected with 422 so the caller keeps the draft client-side.
func Apply(current Kind, selected Kind, reason string) (Kind, error) {
	reason = strings.TrimSpace(reason)

	switch selected {
	case KindPresent, KindAbsent:
		if current == selected {
			return KindUnset, nil
		}
		return selected, nil

	case KindExcused, KindPendingExcuse:
		if current == KindExcused && selected == KindExcused && reason == "" {
			return KindUnset, nil
		}
		if reason == "" {
			return KindPendingExcuse, fiber.NewError(
				fiber.StatusUnprocessableEntity, "سبب الغياب مطلوب لتسجيل العذر")
		}
		return KindExcused, nil

	case KindUnset:
		return KindUnset, nil

	default:
		return current, fiber.NewError(fiber.StatusBadRequest, "حالة الحضور غير معروفة")
	}
}

// Persistable reports whether a state maps to a stored row.
// Unset and pending drafts never touch the table.
func Persistable(k Kind) bool {
	return k == KindPresent || k == KindAbsent || k == KindExcused
}

// StoredStatus returns the status column value for a persistable state.
func StoredStatus(k Kind) string {
	return string(k)
}
