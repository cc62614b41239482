package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"enrollhub/internal/model"
)

// TrainingScheduleRepository defines schedule persistence operations.
// Reads preload the parent Course so services can derive course_name.
type TrainingScheduleRepository interface {
	List(ctx context.Context) ([]model.TrainingSchedule, error)
	Create(ctx context.Context, schedule *model.TrainingSchedule) error
	FindByID(ctx context.Context, id uint) (*model.TrainingSchedule, error)
	Save(ctx context.Context, schedule *model.TrainingSchedule) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type trainingScheduleRepository struct {
	db *gorm.DB
}

// NewTrainingScheduleRepository creates a new schedule repository.
func NewTrainingScheduleRepository(db *gorm.DB) TrainingScheduleRepository {
	return &trainingScheduleRepository{db: db}
}

func (r *trainingScheduleRepository) List(ctx context.Context) ([]model.TrainingSchedule, error) {
	var schedules []model.TrainingSchedule
	if err := r.db.WithContext(ctx).Preload("Course").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *trainingScheduleRepository) Create(ctx context.Context, schedule *model.TrainingSchedule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(schedule).Error
}

func (r *trainingScheduleRepository) FindByID(ctx context.Context, id uint) (*model.TrainingSchedule, error) {
	var schedule model.TrainingSchedule
	if err := r.db.WithContext(ctx).Preload("Course").Where("id = ?", id).First(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *trainingScheduleRepository) Save(ctx context.Context, schedule *model.TrainingSchedule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(schedule).Error
}

func (r *trainingScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.TrainingSchedule{}, id).Error
}

func (r *trainingScheduleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TrainingSchedule{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
