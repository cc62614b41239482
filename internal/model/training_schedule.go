package model

import "time"

// DateLayout is the wire and storage format for schedule dates. Zero-padded
// ISO dates compare correctly as strings, which the date-range check relies on.
const DateLayout = "2006-01-02"

// TrainingSchedule is a time-bound run of a course.
// Invariant: StartDate <= EndDate, enforced on create and on update against
// the merged (effective) pair.
type TrainingSchedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	StartDate string    `json:"start_date" gorm:"size:10;not null"`
	EndDate   string    `json:"end_date" gorm:"size:10;not null"`
	Location  *string   `json:"location" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CourseName is derived from the parent course for display; never persisted.
	CourseName string `json:"course_name" gorm:"-"`

	// Relations
	Course Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
