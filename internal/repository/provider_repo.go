package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// GetByUserID returns the provider profile of a user, or nil when the user
// is not a provider.
func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
