package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"enrollhub/internal/config"
	"enrollhub/internal/db"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

const adminEmail = "admin@enrollhub.local"

func strptr(s string) *string { return &s }

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Course{},
		&model.TrainingSchedule{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repos := repository.New(gormDB)
	ctx := context.Background()

	if err := seedAdmin(ctx, repos); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err := seedCourses(ctx, repos)
	if err != nil {
		log.Fatalf("Failed to seed courses: %v", err)
	}
	log.Printf("Seed completed successfully!")
	log.Printf("  - New courses created: %d", created)
}

// seedAdmin creates the bootstrap admin account if it does not exist yet.
func seedAdmin(ctx context.Context, repos *repository.Repositories) error {
	_, err := repos.Users.FindByEmail(ctx, adminEmail)
	if err == nil {
		log.Println("Admin user already present, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-password"), 10)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repos.Users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s (change the password after first login)", adminEmail)
	return nil
}

// seedCourses inserts sample courses with one schedule each, skipping any
// run it already seeded.
func seedCourses(ctx context.Context, repos *repository.Repositories) (int, error) {
	existing, err := repos.Courses.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("Courses already present (%d), skipping", len(existing))
		return 0, nil
	}

	courses := []struct {
		course   model.Course
		schedule model.TrainingSchedule
	}{
		{
			course: model.Course{Name: "Workplace Safety", Description: strptr("Mandatory safety induction"), Duration: 2},
			schedule: model.TrainingSchedule{
				StartDate: "2026-09-07", EndDate: "2026-09-08", Location: strptr("Room 101"),
			},
		},
		{
			course: model.Course{Name: "First Aid Basics", Description: strptr("CPR and emergency response"), Duration: 3},
			schedule: model.TrainingSchedule{
				StartDate: "2026-09-14", EndDate: "2026-09-16", Location: strptr("Training Center"),
			},
		},
		{
			course: model.Course{Name: "Data Protection", Duration: 1},
			schedule: model.TrainingSchedule{
				StartDate: "2026-10-01", EndDate: "2026-10-01",
			},
		},
	}

	created := 0
	for i := range courses {
		if err := repos.Courses.Create(ctx, &courses[i].course); err != nil {
			return created, err
		}
		courses[i].schedule.CourseID = courses[i].course.ID
		if err := repos.Schedules.Create(ctx, &courses[i].schedule); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
