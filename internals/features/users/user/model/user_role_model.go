package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleModel holds extra role grants on top of users.role. The role
// lookup merges both; when the table is absent (probe) only users.role
// applies.
type UserRoleModel struct {
	UserRoleID     uuid.UUID      `gorm:"column:user_role_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_role_id"`
	UserRoleUserID uuid.UUID      `gorm:"column:user_role_user_id;type:uuid;not null;index:idx_user_roles_user" json:"user_role_user_id"`
	UserRoleName   string         `gorm:"column:user_role_name;type:varchar(20);not null" json:"user_role_name"`
	AssignedAt     time.Time      `gorm:"column:assigned_at;autoCreateTime" json:"assigned_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserRoleModel) TableName() string { return "user_roles" }
