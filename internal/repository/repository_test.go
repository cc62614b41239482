package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Course{},
		&model.TrainingSchedule{},
		&model.Student{},
		&model.StudentTraining{},
	))
	return db
}

func createUser(t *testing.T, repos *repository.Repositories, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, PasswordHash: "hash", Role: model.RoleStudent}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := repos.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Users.Create(ctx, &model.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "hash"}); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEmailTakenExcludesOwnRow(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos, "jane@example.com")
	other := createUser(t, repos, "john@example.com")

	taken, err := repos.Users.EmailTaken(ctx, "jane@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a user's own email does not count as taken")

	taken, err = repos.Users.EmailTaken(ctx, "jane@example.com", other.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.Users.EmailTaken(ctx, "new@example.com", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserUpdateFieldsIsSparse(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos, "jane@example.com")
	require.NoError(t, repos.Users.UpdateFields(ctx, user.ID, map[string]interface{}{"name": "Renamed"}))

	got, err := repos.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestScheduleFindByIDLoadsCourse(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	course := &model.Course{Name: "Safety", Duration: 2}
	require.NoError(t, repos.Courses.Create(ctx, course))
	schedule := &model.TrainingSchedule{CourseID: course.ID, StartDate: "2026-09-07", EndDate: "2026-09-08"}
	require.NoError(t, repos.Schedules.Create(ctx, schedule))

	got, err := repos.Schedules.FindByID(ctx, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, "Safety", got.Course.Name)
}

func TestStudentListFiltersByUserID(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	first := createUser(t, repos, "jane@example.com")
	second := createUser(t, repos, "john@example.com")
	require.NoError(t, repos.Students.Create(ctx, &model.Student{UserID: first.ID, FirstName: "Jane", LastName: "Doe", Email: first.Email}))
	require.NoError(t, repos.Students.Create(ctx, &model.Student{UserID: second.ID, FirstName: "John", LastName: "Doe", Email: second.Email}))

	all, err := repos.Students.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := repos.Students.List(ctx, &second.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "John", filtered[0].FirstName)
	assert.Equal(t, second.Email, filtered[0].User.Email)
}

func TestEnrollmentUpsertUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos, "jane@example.com")
	student := &model.Student{UserID: user.ID, FirstName: "Jane", LastName: "Doe", Email: user.Email}
	require.NoError(t, repos.Students.Create(ctx, student))
	course := &model.Course{Name: "Safety", Duration: 2}
	require.NoError(t, repos.Courses.Create(ctx, course))
	schedule := &model.TrainingSchedule{CourseID: course.ID, StartDate: "2026-09-07", EndDate: "2026-09-08"}
	require.NoError(t, repos.Schedules.Create(ctx, schedule))

	require.NoError(t, repos.Enrollments.Upsert(ctx, &model.StudentTraining{
		StudentID: student.ID, TrainingScheduleID: schedule.ID, Status: model.TrainingStatusOptIn,
	}))
	require.NoError(t, repos.Enrollments.Upsert(ctx, &model.StudentTraining{
		StudentID: student.ID, TrainingScheduleID: schedule.ID, Status: model.TrainingStatusOptOut,
	}))

	records, err := repos.Enrollments.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.TrainingStatusOptOut, records[0].Status)

	got, err := repos.Enrollments.FindByPair(ctx, student.ID, schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TrainingStatusOptOut, got.Status)
}
