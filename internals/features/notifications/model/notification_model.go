package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	TypeGeneral      = "general"
	TypeAttendance   = "attendance"
	TypeFinance      = "finance"
	TypeAnnouncement = "announcement"

	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// NotificationModel is the broadcast record; who actually received it
// lives in notification_recipients.
type NotificationModel struct {
	NotificationID    uuid.UUID `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`
	NotificationTitle string    `gorm:"column:notification_title;type:varchar(200);not null" json:"notification_title"`
	NotificationBody  string    `gorm:"column:notification_body;type:text;not null" json:"notification_body"`

	NotificationType     string `gorm:"column:notification_type;type:varchar(30);not null;default:'general'" json:"notification_type"`
	NotificationPriority string `gorm:"column:notification_priority;type:varchar(10);not null;default:'normal'" json:"notification_priority"`

	// Delivery channels, e.g. {in_app, email}.
	NotificationChannels pq.StringArray `gorm:"column:notification_channels;type:text[]" json:"notification_channels"`

	// Audience selector as sent by the admin, kept for the audit view.
	NotificationTarget datatypes.JSON `gorm:"column:notification_target;type:jsonb" json:"notification_target"`

	NotificationCreatedBy *uuid.UUID `gorm:"column:notification_created_by;type:uuid" json:"notification_created_by,omitempty"`
	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// NotificationRecipientModel is one student's copy with its read flag.
type NotificationRecipientModel struct {
	NotificationRecipientID        uuid.UUID  `gorm:"column:notification_recipient_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_recipient_id"`
	NotificationRecipientNotifID   uuid.UUID  `gorm:"column:notification_recipient_notification_id;type:uuid;not null;uniqueIndex:uq_notification_recipient" json:"notification_recipient_notification_id"`
	NotificationRecipientStudentID uuid.UUID  `gorm:"column:notification_recipient_student_id;type:uuid;not null;uniqueIndex:uq_notification_recipient" json:"notification_recipient_student_id"`
	NotificationRecipientRead      bool       `gorm:"column:notification_recipient_read;not null;default:false" json:"notification_recipient_read"`
	NotificationRecipientReadAt    *time.Time `gorm:"column:notification_recipient_read_at" json:"notification_recipient_read_at,omitempty"`
}

func (NotificationRecipientModel) TableName() string {
	return "notification_recipients"
}
