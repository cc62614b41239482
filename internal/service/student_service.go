package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

// CreateStudentInput carries a validated combined user+student creation request.
type CreateStudentInput struct {
	Name      string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// UpdateStudentInput is a sparse patch spanning the student row and its
// owning user. Password is only applied when non-empty.
type UpdateStudentInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Name      *string
	Email     *string
	Password  *string
}

// CreateForUserInput carries a student profile for an existing user.
type CreateForUserInput struct {
	FirstName string
	LastName  string
	Phone     *string
}

// StudentService handles the student directory, including the paired-user
// lifecycle: creating a student creates its user, deleting one deletes both.
type StudentService interface {
	List(ctx context.Context, userID *uint) ([]model.Student, error)
	Create(ctx context.Context, in CreateStudentInput) (*model.User, *model.Student, error)
	Get(ctx context.Context, id uint) (*model.Student, error)
	Update(ctx context.Context, id uint, in UpdateStudentInput) (*model.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Student, error)
	CreateForUser(ctx context.Context, userID uint, in CreateForUserInput) (*model.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	tx       repository.TxManager
	users    repository.UserRepository
	students repository.StudentRepository
}

// NewStudentService creates a new student service.
func NewStudentService(tx repository.TxManager, users repository.UserRepository, students repository.StudentRepository) StudentService {
	return &studentService{tx: tx, users: users, students: students}
}

func (s *studentService) List(ctx context.Context, userID *uint) ([]model.Student, error) {
	students, err := s.students.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Create makes the user and the student in one transaction; a failure after
// the user insert rolls it back so no orphan user survives. The user's role
// is forced to student regardless of caller input.
func (s *studentService) Create(ctx context.Context, in CreateStudentInput) (*model.User, *model.Student, error) {
	taken, err := s.users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if taken {
		return nil, nil, apperrors.NewFieldError("email", "The email has already been taken.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         model.RoleStudent,
	}
	student := &model.Student{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     in.Email,
	}

	err = s.tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		student.UserID = user.ID
		if err := tx.Students.Create(ctx, student); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	student.User = *user
	return user, student, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return student, nil
}

// Update patches the student and its user inside one transaction. Email
// uniqueness excludes the student's own user row.
func (s *studentService) Update(ctx context.Context, id uint, in UpdateStudentInput) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	userFields := map[string]interface{}{}
	if in.Name != nil {
		userFields["name"] = *in.Name
	}
	if in.Email != nil {
		taken, err := s.users.EmailTaken(ctx, *in.Email, student.UserID)
		if err != nil {
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
		if taken {
			return nil, apperrors.NewFieldError("email", "The email has already been taken.")
		}
		userFields["email"] = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		userFields["password_hash"] = string(hashed)
	}

	studentFields := map[string]interface{}{}
	if in.FirstName != nil {
		studentFields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		studentFields["last_name"] = *in.LastName
	}
	if in.Phone != nil {
		studentFields["phone"] = *in.Phone
	}

	err = s.tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if len(userFields) > 0 {
			if err := tx.Users.UpdateFields(ctx, student.UserID, userFields); err != nil {
				return fmt.Errorf("update user: %w", err)
			}
		}
		if len(studentFields) > 0 {
			if err := tx.Students.UpdateFields(ctx, student.ID, studentFields); err != nil {
				return fmt.Errorf("update student: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload student: %w", err)
	}
	return refreshed, nil
}

func (s *studentService) GetByUserID(ctx context.Context, userID uint) (*model.Student, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("Student not found for this user")
		}
		return nil, fmt.Errorf("find student by user: %w", err)
	}
	return student, nil
}

// CreateForUser binds a new student profile to an existing user. At most one
// student per user; a second binding is a conflict.
func (s *studentService) CreateForUser(ctx context.Context, userID uint, in CreateForUserInput) (*model.Student, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if _, err := s.students.FindByUserID(ctx, userID); err == nil {
		return nil, apperrors.NewConflict("Student record already exists for this user")
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing student: %w", err)
	}

	student := &model.Student{
		UserID:    userID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     user.Email,
	}
	err = s.tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		return tx.Students.Create(ctx, student)
	})
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	student.User = *user
	return student, nil
}

// Delete removes the student, its enrollment records, the owning user and
// that user's tokens in one transaction. Either everything goes or nothing does.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NewNotFound("Student not found")
		}
		return fmt.Errorf("find student: %w", err)
	}

	return s.tx.WithTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Enrollments.DeleteByStudentID(ctx, student.ID); err != nil {
			return fmt.Errorf("delete enrollments: %w", err)
		}
		if err := tx.Students.Delete(ctx, student.ID); err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		if err := tx.Tokens.DeleteByUserID(ctx, student.UserID); err != nil {
			return fmt.Errorf("delete tokens: %w", err)
		}
		if err := tx.Users.Delete(ctx, student.UserID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
