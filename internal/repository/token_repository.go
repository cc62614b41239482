package repository

import (
	"context"

	"gorm.io/gorm"

	"enrollhub/internal/model"
)

// TokenRepository defines access-token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AccessToken) error
	FindByToken(ctx context.Context, tokenID string) (*model.AccessToken, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByToken resolves a token id to its row with the owning user loaded.
// gorm.ErrRecordNotFound means the token was never issued or has been revoked.
func (r *tokenRepository) FindByToken(ctx context.Context, tokenID string) (*model.AccessToken, error) {
	var token model.AccessToken
	if err := r.db.WithContext(ctx).Preload("User").Where("token = ?", tokenID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.AccessToken{}, id).Error
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AccessToken{}).Error
}
