package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts the user and, when provider is non-nil, its provider profile
// in the same transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User, provider *domain.Provider) error {
	u.Email = normalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Provider").Create(u).Error; err != nil {
			return err
		}
		if provider == nil {
			return nil
		}
		provider.UserID = u.ID
		if err := tx.Omit("User").Create(provider).Error; err != nil {
			return err
		}
		u.Provider = provider
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("Provider").
		First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Count(&cnt).Error
	return cnt > 0, err
}
