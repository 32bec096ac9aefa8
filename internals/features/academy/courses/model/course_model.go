package model

import (
	"time"

	"github.com/google/uuid"
)

// Course audience tags. "women" marks women-only circles.
const (
	AudiencePublic  = "public"
	AudiencePrivate = "private"
	AudienceWomen   = "women"
)

type CourseModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`

	CourseName       string  `gorm:"column:course_name;size:150;not null" json:"course_name"`
	CourseInstructor *string `gorm:"column:course_instructor;size:100" json:"course_instructor,omitempty"`
	CourseSchedule   *string `gorm:"column:course_schedule;size:150" json:"course_schedule,omitempty"`
	CourseLevel      *string `gorm:"column:course_level;size:50" json:"course_level,omitempty"`
	CourseLocation   *string `gorm:"column:course_location;size:150" json:"course_location,omitempty"`

	CourseFocus       *string `gorm:"column:course_focus;type:text" json:"course_focus,omitempty"`
	CourseDescription *string `gorm:"column:course_description;type:text" json:"course_description,omitempty"`
	CourseNotes       *string `gorm:"column:course_notes;type:text" json:"course_notes,omitempty"`

	CourseAudience string `gorm:"column:course_audience;type:varchar(10);not null;default:'public'" json:"course_audience"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }
