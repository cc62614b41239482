package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"enrollhub/internal/model"
)

// EnrollmentRepository defines opt-in/opt-out persistence operations.
type EnrollmentRepository interface {
	Upsert(ctx context.Context, record *model.StudentTraining) error
	FindByPair(ctx context.Context, studentID, scheduleID uint) (*model.StudentTraining, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.StudentTraining, error)
	DeleteByStudentID(ctx context.Context, studentID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Upsert creates the (student, schedule) record or overwrites its status in
// place. Atomicity rides on the composite unique index; concurrent writes for
// the same pair can never produce two rows.
func (r *enrollmentRepository) Upsert(ctx context.Context, record *model.StudentTraining) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "training_schedule_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(record).Error
}

func (r *enrollmentRepository) FindByPair(ctx context.Context, studentID, scheduleID uint) (*model.StudentTraining, error) {
	var record model.StudentTraining
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND training_schedule_id = ?", studentID, scheduleID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByStudent returns the student's records ordered by schedule id, an
// explicit sort key so clients get a stable order.
func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.StudentTraining, error) {
	var records []model.StudentTraining
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("training_schedule_id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *enrollmentRepository) DeleteByStudentID(ctx context.Context, studentID uint) error {
	return r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&model.StudentTraining{}).Error
}
