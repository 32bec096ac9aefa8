package dto

import (
	"time"

	"github.com/google/uuid"
)

// Target selects the audience of a notification.
// Type is one of: all, course, students.
type Target struct {
	Type       string      `json:"type" validate:"required,oneof=all course students"`
	CourseID   *uuid.UUID  `json:"course_id" validate:"required_if=Type course"`
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required_if=Type students,omitempty,min=1,dive,required"`
}

type CreateNotificationRequest struct {
	Title    string   `json:"title" validate:"required,min=2,max=200"`
	Body     string   `json:"body" validate:"required,min=2"`
	Type     string   `json:"type" validate:"omitempty,oneof=general attendance finance announcement"`
	Priority string   `json:"priority" validate:"omitempty,oneof=normal high"`
	Channels []string `json:"channels" validate:"omitempty,dive,oneof=in_app email"`
	Target   Target   `json:"target" validate:"required"`
}

type NotificationResponse struct {
	NotificationID uuid.UUID `json:"notification_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	Channels       []string  `json:"channels"`
	CreatedAt      time.Time `json:"created_at"`
	Recipients     int64     `json:"recipients,omitempty"`
}

// InboxItem is one line in a student's inbox.
type InboxItem struct {
	NotificationID uuid.UUID  `json:"notification_id" gorm:"column:notification_id"`
	Title          string     `json:"title" gorm:"column:notification_title"`
	Body           string     `json:"body" gorm:"column:notification_body"`
	Type           string     `json:"type" gorm:"column:notification_type"`
	Priority       string     `json:"priority" gorm:"column:notification_priority"`
	Read           bool       `json:"read" gorm:"column:notification_recipient_read"`
	ReadAt         *time.Time `json:"read_at,omitempty" gorm:"column:notification_recipient_read_at"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:notification_created_at"`
}
