package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

// ServiceFilter narrows the catalogue at the persistence layer. A zero Limit
// returns every matching row.
type ServiceFilter struct {
	Category  string
	MinRating float64
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	Limit     int
	Offset    int
}

// publicUserColumns limits the provider's user to what anonymous catalogue
// readers may see.
func publicUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "role", "latitude", "longitude")
}

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// searchable returns active services of available providers.
func (r *ServiceRepository) searchable(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Service{}).
		Joins("JOIN providers ON providers.id = services.provider_id").
		Where("services.is_active = ?", true).
		Where("providers.is_available = ?", true)
}

// Search returns one page of matching services and the count of all matches.
func (r *ServiceRepository) Search(ctx context.Context, f ServiceFilter) ([]domain.Service, int64, error) {
	var services []domain.Service
	var total int64

	q := r.searchable(ctx).Where("providers.average_rating >= ?", f.MinRating)

	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" {
		q = q.Joins("JOIN categories ON categories.id = services.category_id").
			Where("LOWER(categories.name) LIKE ?", "%"+c+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("services.base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("services.base_price <= ?", *f.MaxPrice)
	}

	// Count on a copy so the count does not leak into the page query
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.SortBy {
	case "price":
		q = q.Order("services.base_price ASC")
	case "rating":
		q = q.Order("providers.average_rating DESC")
	default:
		q = q.Order("services.created_at DESC")
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	err := q.
		Preload("Provider.User", publicUserColumns).
		Preload("Category").
		Find(&services).Error
	return services, total, err
}

// Popular returns the best rated services of available providers.
func (r *ServiceRepository) Popular(ctx context.Context, limit int) ([]domain.Service, error) {
	var services []domain.Service
	err := r.searchable(ctx).
		Order("providers.average_rating DESC").
		Order("providers.total_reviews DESC").
		Limit(limit).
		Preload("Provider.User", publicUserColumns).
		Preload("Category").
		Find(&services).Error
	return services, err
}

// GetActiveByID fetches an active service with its provider and category.
func (r *ServiceRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Preload("Provider.User", publicUserColumns).
		Preload("Category").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
