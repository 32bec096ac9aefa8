package dto

import (
	"github.com/google/uuid"

	"almanar_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================
type UpdateProfileRequest struct {
	ProfileFullName *string `json:"profile_full_name" validate:"omitempty,min=2,max=100"`
	ProfilePhone    *string `json:"profile_phone" validate:"omitempty,max=20"`
	ProfileBio      *string `json:"profile_bio" validate:"omitempty,max=300"`
}

// ================== RESPONSE ==================
type ProfileResponse struct {
	ProfileID        uuid.UUID `json:"profile_id"`
	ProfileUserID    uuid.UUID `json:"profile_user_id"`
	ProfileFullName  string    `json:"profile_full_name"`
	ProfilePhone     *string   `json:"profile_phone,omitempty"`
	ProfileAvatarURL *string   `json:"profile_avatar_url,omitempty"`
	ProfileBio       *string   `json:"profile_bio,omitempty"`
	ProfileCreatedAt string    `json:"profile_created_at"`
}

// ================ CONVERSION =================
func ToProfileResponse(m *model.ProfileModel) *ProfileResponse {
	return &ProfileResponse{
		ProfileID:        m.ProfileID,
		ProfileUserID:    m.ProfileUserID,
		ProfileFullName:  m.ProfileFullName,
		ProfilePhone:     m.ProfilePhone,
		ProfileAvatarURL: m.ProfileAvatarURL,
		ProfileBio:       m.ProfileBio,
		ProfileCreatedAt: m.ProfileCreatedAt.Format("2006-01-02 15:04:05"),
	}
}
