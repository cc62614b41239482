package service

import (
	"context"
	"fmt"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

// EnrollmentService handles opt-in/opt-out records.
type EnrollmentService interface {
	SetStatus(ctx context.Context, studentID, scheduleID uint, status model.TrainingStatus) (*model.StudentTraining, error)
	ListStatuses(ctx context.Context, studentID uint) ([]model.StudentTraining, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	students    repository.StudentRepository
	schedules   repository.TrainingScheduleRepository
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(
	enrollments repository.EnrollmentRepository,
	students repository.StudentRepository,
	schedules repository.TrainingScheduleRepository,
) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		students:    students,
		schedules:   schedules,
	}
}

// SetStatus validates both foreign keys, then upserts the (student, schedule)
// record so exactly one row per pair ever exists.
func (s *enrollmentService) SetStatus(ctx context.Context, studentID, scheduleID uint, status model.TrainingStatus) (*model.StudentTraining, error) {
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("check student: %w", err)
	}
	if !exists {
		return nil, apperrors.NewFieldError("student_id", "The selected student_id is invalid.")
	}

	exists, err = s.schedules.Exists(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("check schedule: %w", err)
	}
	if !exists {
		return nil, apperrors.NewFieldError("training_schedule_id", "The selected training_schedule_id is invalid.")
	}

	if status != model.TrainingStatusOptIn && status != model.TrainingStatusOptOut {
		return nil, apperrors.NewFieldError("status", "The selected status is invalid.")
	}

	record := &model.StudentTraining{
		StudentID:          studentID,
		TrainingScheduleID: scheduleID,
		Status:             status,
	}
	if err := s.enrollments.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert enrollment: %w", err)
	}

	// Re-read: on a conflict-update the insert id doesn't point at the row.
	result, err := s.enrollments.FindByPair(ctx, studentID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("reload enrollment: %w", err)
	}
	return result, nil
}

func (s *enrollmentService) ListStatuses(ctx context.Context, studentID uint) ([]model.StudentTraining, error) {
	records, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return records, nil
}
