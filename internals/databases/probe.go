package database

import (
	"log"
	"sync"

	"gorm.io/gorm"
)

// Schema capability probe. Deployments migrate at their own pace, so
// optional columns/tables are checked once at startup and features degrade
// instead of erroring on every query.

type schemaMeta struct {
	once sync.Once

	HasAttendanceReason bool
	HasUserRoles        bool

	Ready bool
}

var Meta schemaMeta

// PrewarmSchemaMeta runs the probes once after the DB is up.
func PrewarmSchemaMeta(db *gorm.DB) {
	Meta.once.Do(func() {
		Meta.HasAttendanceReason = HasColumn(db, "attendance", "attendance_reason")
		Meta.HasUserRoles = HasTable(db, "user_roles")
		Meta.Ready = true

		if !Meta.HasAttendanceReason {
			log.Println("[WARN] attendance.attendance_reason column missing; excuse reasons will not be stored")
		}
		if !Meta.HasUserRoles {
			log.Println("[WARN] user_roles table missing; falling back to users.user_role only")
		}
	})
}

func HasTable(db *gorm.DB, table string) bool {
	if db == nil || table == "" {
		return false
	}
	var exists bool
	_ = db.Raw(`SELECT to_regclass((SELECT current_schema()) || '.' || ?) IS NOT NULL`, table).Scan(&exists).Error
	return exists
}

func HasColumn(db *gorm.DB, table, column string) bool {
	if db == nil || table == "" || column == "" {
		return false
	}
	var exists bool
	_ = db.Raw(`SELECT EXISTS(
	              SELECT 1 FROM information_schema.columns
	              WHERE table_schema = current_schema()
	                AND table_name = ? AND column_name = ?
	            )`, table, column).Scan(&exists).Error
	return exists
}
