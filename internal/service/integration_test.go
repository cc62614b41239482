package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"enrollhub/internal/auth"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
	"enrollhub/internal/service"
)

// newTestDB opens an in-memory sqlite database with the full schema. The pool
// is pinned to one connection so every query sees the same memory database.
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

func seedCourseAndSchedule(t *testing.T, repos *repository.Repositories) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	course := &model.Course{Name: "Safety", Duration: 2}
	require.NoError(t, repos.Courses.Create(ctx, course))
	schedule := &model.TrainingSchedule{CourseID: course.ID, StartDate: "2026-09-07", EndDate: "2026-09-08"}
	require.NoError(t, repos.Schedules.Create(ctx, schedule))
	return course.ID, schedule.ID
}

func TestEnrollmentUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	_, scheduleID := seedCourseAndSchedule(t, repos)
	studentSvc := service.NewStudentService(repos, repos.Users, repos.Students)
	_, student, err := studentSvc.Create(ctx, service.CreateStudentInput{
		Name: "Jane Doe", Email: "jane@example.com", Password: "password123",
		FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)

	svc := service.NewEnrollmentService(repos.Enrollments, repos.Students, repos.Schedules)

	first, err := svc.SetStatus(ctx, student.ID, scheduleID, model.TrainingStatusOptIn)
	require.NoError(t, err)
	assert.Equal(t, model.TrainingStatusOptIn, first.Status)

	second, err := svc.SetStatus(ctx, student.ID, scheduleID, model.TrainingStatusOptOut)
	require.NoError(t, err)
	assert.Equal(t, model.TrainingStatusOptOut, second.Status)

	records, err := svc.ListStatuses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, scheduleID, records[0].TrainingScheduleID)
	assert.Equal(t, model.TrainingStatusOptOut, records[0].Status)

	var count int64
	require.NoError(t, db.Model(&model.StudentTraining{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStudentDeleteRemovesPairedRows(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	_, scheduleID := seedCourseAndSchedule(t, repos)
	studentSvc := service.NewStudentService(repos, repos.Users, repos.Students)
	user, student, err := studentSvc.Create(ctx, service.CreateStudentInput{
		Name: "Jane Doe", Email: "jane@example.com", Password: "password123",
		FirstName: "Jane", LastName: "Doe",
	})
	require.NoError(t, err)

	enrollSvc := service.NewEnrollmentService(repos.Enrollments, repos.Students, repos.Schedules)
	_, err = enrollSvc.SetStatus(ctx, student.ID, scheduleID, model.TrainingStatusOptIn)
	require.NoError(t, err)

	require.NoError(t, studentSvc.Delete(ctx, student.ID))

	var students, users, enrollments int64
	require.NoError(t, db.Model(&model.Student{}).Where("id = ?", student.ID).Count(&students).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Count(&users).Error)
	require.NoError(t, db.Model(&model.StudentTraining{}).Where("student_id = ?", student.ID).Count(&enrollments).Error)
	assert.Zero(t, students)
	assert.Zero(t, users)
	assert.Zero(t, enrollments)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	tokenService := auth.NewTokenService("test-secret")
	svc := service.NewAuthService(repos.Users, repos.Tokens, tokenService)

	registered, _, err := svc.Register(ctx, service.RegisterInput{
		Name: "Test User", Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)

	loggedIn, _, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.Equal(t, registered.Email, loggedIn.Email)
	assert.Equal(t, registered.Role, loggedIn.Role)
}

// Logging out revokes only the presented token; the user's other tokens keep working.
func TestLogoutRevokesOnlyCurrentToken(t *testing.T) {
	db := newTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	tokenService := auth.NewTokenService("test-secret")
	svc := service.NewAuthService(repos.Users, repos.Tokens, tokenService)

	_, firstSigned, err := svc.Register(ctx, service.RegisterInput{
		Name: "Test User", Email: "test@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, secondSigned, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	firstClaims, err := tokenService.Parse(firstSigned)
	require.NoError(t, err)
	secondClaims, err := tokenService.Parse(secondSigned)
	require.NoError(t, err)

	firstRow, err := repos.Tokens.FindByToken(ctx, firstClaims.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, firstRow.ID))

	_, err = repos.Tokens.FindByToken(ctx, firstClaims.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	remaining, err := repos.Tokens.FindByToken(ctx, secondClaims.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", remaining.User.Email)
}
