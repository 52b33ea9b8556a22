package repository

import (
	"context"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type CategoryWithCount struct {
	domain.Category
	ServiceCount int64 `json:"serviceCount"`
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive returns active categories ordered by name with the number of
// active services in each.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]CategoryWithCount, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		CategoryID int64
		Cnt        int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Service{}).
		Select("category_id, COUNT(*) AS cnt").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Cnt
	}

	out := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryWithCount{Category: c, ServiceCount: byCategory[c.ID]})
	}
	return out, nil
}
