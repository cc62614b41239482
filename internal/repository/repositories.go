package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the per-entity repositories over one DB handle.
type Repositories struct {
	db *gorm.DB

	Users       UserRepository
	Tokens      TokenRepository
	Courses     CourseRepository
	Schedules   TrainingScheduleRepository
	Students    StudentRepository
	Enrollments EnrollmentRepository
}

// New creates the repository set.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		Users:       NewUserRepository(db),
		Tokens:      NewTokenRepository(db),
		Courses:     NewCourseRepository(db),
		Schedules:   NewTrainingScheduleRepository(db),
		Students:    NewStudentRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}

// TxManager runs a function against a transactional repository set.
// Commit on nil return, rollback on error or panic.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *Repositories) error) error
}

// WithTransaction executes fn inside a database transaction, handing it
// repositories bound to that transaction.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
