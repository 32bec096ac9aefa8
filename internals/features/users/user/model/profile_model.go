package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileModel struct {
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`

	ProfileUserID uuid.UUID `gorm:"column:profile_user_id;type:uuid;not null;uniqueIndex:uq_profiles_user_id" json:"profile_user_id"`

	ProfileFullName  string  `gorm:"column:profile_full_name;size:100" json:"profile_full_name"`
	ProfilePhone     *string `gorm:"column:profile_phone;size:20;index:idx_profiles_phone" json:"profile_phone,omitempty"`
	ProfileAvatarURL *string `gorm:"column:profile_avatar_url;size:255" json:"profile_avatar_url,omitempty"`
	ProfileBio       *string `gorm:"column:profile_bio;size:300" json:"profile_bio,omitempty"`

	ProfileCreatedAt time.Time      `gorm:"column:profile_created_at;autoCreateTime" json:"profile_created_at"`
	ProfileUpdatedAt *time.Time     `gorm:"column:profile_updated_at;autoUpdateTime" json:"profile_updated_at,omitempty"`
	ProfileDeletedAt gorm.DeletedAt `gorm:"column:profile_deleted_at;index" json:"profile_deleted_at,omitempty"`
}

func (ProfileModel) TableName() string { return "profiles" }
