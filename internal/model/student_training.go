package model

import "time"

// TrainingStatus is a student's standing for one schedule.
type TrainingStatus string

const (
	TrainingStatusOptIn  TrainingStatus = "opt-in"
	TrainingStatusOptOut TrainingStatus = "opt-out"
)

// StudentTraining maps (student, schedule) to an opt status. The composite
// unique index guarantees at most one row per pair; writes go through an
// upsert keyed on it.
type StudentTraining struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	StudentID          uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_student_schedule"`
	TrainingScheduleID uint           `json:"training_schedule_id" gorm:"not null;uniqueIndex:idx_student_schedule"`
	Status             TrainingStatus `json:"status" gorm:"type:varchar(10);not null;default:'opt-in'"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`

	// Relations
	Student          Student          `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	TrainingSchedule TrainingSchedule `json:"-" gorm:"foreignKey:TrainingScheduleID;constraint:OnDelete:CASCADE"`
}
