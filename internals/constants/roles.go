package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Role error message templates (Arabic, shown to the user as-is).
const (
	ErrOnlyAdminsCanAccess   = "هذه الصفحة متاحة للمشرفين فقط: %s"
	ErrOnlyStudentsCanAccess = "هذه الصفحة متاحة للطلاب فقط: %s"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

var AllRoles = []string{
	RoleStudent,
	RoleAdmin,
}
