package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"enrollhub/internal/cache"
	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

const courseCacheTTL = 5 * time.Minute

// CreateCourseInput carries a validated course creation request.
type CreateCourseInput struct {
	Name        string
	Description *string
	Duration    int
}

// UpdateCourseInput is a sparse patch; nil fields are left untouched.
type UpdateCourseInput struct {
	Name        *string
	Description *string
	Duration    *int
}

// CourseService handles course operations.
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, in CreateCourseInput) (*model.Course, error)
	Get(ctx context.Context, id uint) (*model.Course, error)
	Update(ctx context.Context, id uint, in UpdateCourseInput) (*model.Course, error)
	Delete(ctx context.Context, id uint) error
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
}

// NewCourseService creates a new course service.
func NewCourseService(repo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{repo: repo, cache: cache}
}

func (s *courseService) cacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) Create(ctx context.Context, in CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// Get retrieves a course by id with a fail-safe read-through cache.
func (s *courseService) Get(ctx context.Context, id uint) (*model.Course, error) {
	var cached model.Course
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), course, courseCacheTTL)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uint, in UpdateCourseInput) (*model.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	if in.Name != nil {
		course.Name = *in.Name
	}
	if in.Description != nil {
		course.Description = in.Description
	}
	if in.Duration != nil {
		course.Duration = *in.Duration
	}

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("save course: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewNotFound("Course not found")
		}
		return fmt.Errorf("find course: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
