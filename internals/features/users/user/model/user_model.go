package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// UserModel maps the users table.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"omitempty,oneof=student admin"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "student"
	}
}

// Validate checks the struct rules and returns Arabic field messages.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, "حقل "+fieldErr.Field()+" مطلوب")
		case "email":
			msgs = append(msgs, "صيغة البريد الإلكتروني غير صحيحة")
		case "min":
			msgs = append(msgs, fieldErr.Field()+" يجب ألا يقل عن "+fieldErr.Param()+" أحرف")
		case "max":
			msgs = append(msgs, fieldErr.Field()+" يجب ألا يتجاوز "+fieldErr.Param()+" حرفًا")
		case "oneof":
			msgs = append(msgs, fieldErr.Field()+" يجب أن يكون أحد: "+fieldErr.Param())
		default:
			msgs = append(msgs, "صيغة "+fieldErr.Field()+" غير صالحة")
		}
	}
	return errors.New(strings.Join(msgs, "، "))
}
