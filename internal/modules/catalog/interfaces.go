package catalog

import (
	"context"
	"time"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

type ServiceRepositoryInterface interface {
	Search(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, int64, error)
	Popular(ctx context.Context, limit int) ([]domain.Service, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Service, error)
}

type CategoryRepositoryInterface interface {
	ListActive(ctx context.Context) ([]repository.CategoryWithCount, error)
}

// Cache holds read-mostly listings. *cache.RedisCache satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
