package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

// CreateScheduleInput carries a validated schedule creation request.
// Dates arrive pre-validated as YYYY-MM-DD strings.
type CreateScheduleInput struct {
	CourseID  uint
	StartDate string
	EndDate   string
	Location  *string
}

// UpdateScheduleInput is a sparse patch; nil fields keep their stored values.
type UpdateScheduleInput struct {
	CourseID  *uint
	StartDate *string
	EndDate   *string
	Location  *string
}

// TrainingScheduleService handles schedule operations.
type TrainingScheduleService interface {
	List(ctx context.Context) ([]model.TrainingSchedule, error)
	Create(ctx context.Context, in CreateScheduleInput) (*model.TrainingSchedule, error)
	Get(ctx context.Context, id uint) (*model.TrainingSchedule, error)
	Update(ctx context.Context, id uint, in UpdateScheduleInput) (*model.TrainingSchedule, error)
	Delete(ctx context.Context, id uint) error
}

type trainingScheduleService struct {
	schedules repository.TrainingScheduleRepository
	courses   repository.CourseRepository
}

// NewTrainingScheduleService creates a new schedule service.
func NewTrainingScheduleService(schedules repository.TrainingScheduleRepository, courses repository.CourseRepository) TrainingScheduleService {
	return &trainingScheduleService{schedules: schedules, courses: courses}
}

func (s *trainingScheduleService) List(ctx context.Context) ([]model.TrainingSchedule, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	for i := range schedules {
		decorate(&schedules[i])
	}
	return schedules, nil
}

func (s *trainingScheduleService) Create(ctx context.Context, in CreateScheduleInput) (*model.TrainingSchedule, error) {
	exists, err := s.courses.Exists(ctx, in.CourseID)
	if err != nil {
		return nil, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return nil, apperrors.NewFieldError("course_id", "The selected course_id is invalid.")
	}
	if in.StartDate > in.EndDate {
		return nil, apperrors.NewFieldError("start_date", "The start_date field must be a date before or equal to end_date.")
	}

	schedule := &model.TrainingSchedule{
		CourseID:  in.CourseID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Location:  in.Location,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return s.reload(ctx, schedule.ID)
}

func (s *trainingScheduleService) Get(ctx context.Context, id uint) (*model.TrainingSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Training Schedule not found")
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	decorate(schedule)
	return schedule, nil
}

// Update applies a sparse patch and re-checks the date ordering against the
// effective pair: a supplied value, or the stored one where absent.
func (s *trainingScheduleService) Update(ctx context.Context, id uint, in UpdateScheduleInput) (*model.TrainingSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Training Schedule not found")
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}

	if in.CourseID != nil {
		exists, err := s.courses.Exists(ctx, *in.CourseID)
		if err != nil {
			return nil, fmt.Errorf("check course: %w", err)
		}
		if !exists {
			return nil, apperrors.NewFieldError("course_id", "The selected course_id is invalid.")
		}
	}

	startDate := schedule.StartDate
	if in.StartDate != nil {
		startDate = *in.StartDate
	}
	endDate := schedule.EndDate
	if in.EndDate != nil {
		endDate = *in.EndDate
	}
	if startDate > endDate {
		return nil, apperrors.NewUnprocessable("start_date must be before or equal to end_date")
	}

	if in.CourseID != nil {
		schedule.CourseID = *in.CourseID
	}
	schedule.StartDate = startDate
	schedule.EndDate = endDate
	if in.Location != nil {
		schedule.Location = in.Location
	}

	if err := s.schedules.Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	return s.reload(ctx, schedule.ID)
}

func (s *trainingScheduleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.schedules.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewNotFound("Training Schedule not found")
		}
		return fmt.Errorf("find schedule: %w", err)
	}
	if err := s.schedules.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (s *trainingScheduleService) reload(ctx context.Context, id uint) (*model.TrainingSchedule, error) {
	schedule, err := s.schedules.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload schedule: %w", err)
	}
	decorate(schedule)
	return schedule, nil
}

// decorate fills the derived course_name from the preloaded parent course.
func decorate(schedule *model.TrainingSchedule) {
	schedule.CourseName = schedule.Course.Name
}
