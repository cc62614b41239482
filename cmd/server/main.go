package main

import (
	"log"
	"net/http"
	"os"

	_ "enrollhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"enrollhub/internal/auth"
	"enrollhub/internal/cache"
	"enrollhub/internal/config"
	"enrollhub/internal/db"
	"enrollhub/internal/handler"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
	"enrollhub/internal/router"
	"enrollhub/internal/service"
)

// @title Training Enrollment API
// @version 1.0
// @description Training-course enrollment API with bearer-token authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.StudentTraining{},
			&model.TrainingSchedule{},
			&model.Student{},
			&model.Course{},
			&model.AccessToken{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Course{},
		&model.TrainingSchedule{},
		&model.Student{},
		&model.StudentTraining{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	repos := repository.New(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.TokenSecret)

	// Initialize services
	authService := service.NewAuthService(repos.Users, repos.Tokens, tokenService)
	courseService := service.NewCourseService(repos.Courses, cacheClient)
	scheduleService := service.NewTrainingScheduleService(repos.Schedules, repos.Courses)
	studentService := service.NewStudentService(repos, repos.Users, repos.Students)
	enrollmentService := service.NewEnrollmentService(repos.Enrollments, repos.Students, repos.Schedules)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	scheduleHandler := handler.NewTrainingScheduleHandler(scheduleService)
	studentHandler := handler.NewStudentHandler(studentService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		repos.Tokens,
		authHandler,
		courseHandler,
		scheduleHandler,
		studentHandler,
		enrollmentHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
