package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"enrollhub/internal/auth"
	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
	"enrollhub/internal/repository"
)

const bcryptCost = 10

// tokenName labels every token issued via register/login.
const tokenName = "auth_token"

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, tokenRowID uint) error
}

type authService struct {
	users        repository.UserRepository
	tokens       repository.TokenRepository
	tokenService *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, tokenService *auth.TokenService) AuthService {
	return &authService{
		users:        users,
		tokens:       tokens,
		tokenService: tokenService,
	}
}

// Register creates a user with a hashed password and issues a fresh token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	taken, err := s.users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, "", fmt.Errorf("check email uniqueness: %w", err)
	}
	if taken {
		return nil, "", apperrors.NewFieldError("email", "The email has already been taken.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.RoleStudent
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	signed, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Login verifies credentials and issues a new token. Prior tokens stay valid.
// Both an unknown email and a wrong password surface the same generic error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	signed, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Logout revokes exactly the token backing the current request.
func (s *authService) Logout(ctx context.Context, tokenRowID uint) error {
	if err := s.tokens.DeleteByID(ctx, tokenRowID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *authService) issueToken(ctx context.Context, userID uint) (string, error) {
	tokenID, signed, err := s.tokenService.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	record := &model.AccessToken{
		UserID: userID,
		Name:   tokenName,
		Token:  tokenID,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return signed, nil
}
