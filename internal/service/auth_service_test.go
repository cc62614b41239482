package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"enrollhub/internal/auth"
	apperrors "enrollhub/internal/errors"
	"enrollhub/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		input       RegisterInput
		setupMock   func(*MockUserRepository, *MockTokenRepository)
		wantErr     bool
		wantField   string
		wantRole    string
	}{
		{
			name:  "successful registration defaults role to student",
			input: RegisterInput{Name: "Test User", Email: "test@example.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("EmailTaken", mock.Anything, "test@example.com", uint(0)).Return(false, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				}).Return(nil)
				tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.AccessToken")).Return(nil)
			},
			wantRole: model.RoleStudent,
		},
		{
			name:  "explicit admin role kept",
			input: RegisterInput{Name: "Boss", Email: "boss@example.com", Password: "password123", Role: model.RoleAdmin},
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("EmailTaken", mock.Anything, "boss@example.com", uint(0)).Return(false, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 2
				}).Return(nil)
				tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.AccessToken")).Return(nil)
			},
			wantRole: model.RoleAdmin,
		},
		{
			name:  "duplicate email rejected with field error",
			input: RegisterInput{Name: "Existing", Email: "existing@example.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("EmailTaken", mock.Anything, "existing@example.com", uint(0)).Return(true, nil)
			},
			wantErr:   true,
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenRepository)
			tt.setupMock(users, tokens)

			svc := NewAuthService(users, tokens, auth.NewTokenService("test-secret"))
			user, token, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				var ve *apperrors.ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Fields, tt.wantField)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.wantRole, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository, *MockTokenRepository)
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID: 1, Email: "test@example.com", PasswordHash: string(hashed), Role: model.RoleStudent,
				}, nil)
				tokens.On("Create", mock.Anything, mock.AnythingOfType("*model.AccessToken")).Return(nil)
			},
		},
		{
			name:     "wrong password gives generic error",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID: 1, Email: "test@example.com", PasswordHash: string(hashed),
				}, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email gives the same generic error",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository) {
				users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenRepository)
			tt.setupMock(users, tokens)

			svc := NewAuthService(users, tokens, auth.NewTokenService("test-secret"))
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	tokens.On("DeleteByID", mock.Anything, uint(42)).Return(nil)

	svc := NewAuthService(users, tokens, auth.NewTokenService("test-secret"))
	err := svc.Logout(context.Background(), 42)

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
}
