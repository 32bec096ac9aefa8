package model

import (
	"time"

	"github.com/google/uuid"
)

type PasswordResetTokenModel struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	TokenHash []byte `gorm:"column:token_hash;type:bytea;not null" json:"-"`

	ExpiresAt time.Time  `gorm:"column:expires_at;type:timestamptz;not null" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at;type:timestamptz" json:"used_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
