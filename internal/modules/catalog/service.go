package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/geo"
	"servicehub/internal/pkg/response"
	"servicehub/internal/repository"
)

const categoriesCacheKey = "catalog:categories"

type Service struct {
	services   ServiceRepositoryInterface
	categories CategoryRepositoryInterface
	cache      Cache
	cacheTTL   time.Duration
}

// NewService builds the catalogue service. A nil cache disables caching.
func NewService(services ServiceRepositoryInterface, categories CategoryRepositoryInterface, cache Cache, cacheTTL time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		services:   services,
		categories: categories,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Search runs the filter/sort pipeline. Distance-dependent queries are
// resolved in memory over the full candidate set and paged afterwards, so the
// pagination always describes the filtered result.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	var origin *geo.Point
	if q.Latitude != nil && q.Longitude != nil {
		origin = &geo.Point{Lat: *q.Latitude, Lng: *q.Longitude}
	}

	filter := repository.ServiceFilter{
		Category:  q.Category,
		MinRating: q.MinRating,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		SortBy:    q.SortBy,
	}

	if !geoQuery(origin, q.MaxDistance, q.SortBy) {
		filter.Limit = q.Limit
		filter.Offset = (q.Page - 1) * q.Limit

		services, total, err := s.services.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		if origin != nil {
			attachDistances(services, *origin)
		}
		return &SearchResult{Services: services, Pagination: response.NewPagination(q.Page, q.Limit, total)}, nil
	}

	candidates, _, err := s.services.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	matched := filterAndSort(candidates, *origin, q.MaxDistance, q.SortBy)
	return &SearchResult{
		Services:   pageOf(matched, q.Page, q.Limit),
		Pagination: response.NewPagination(q.Page, q.Limit, int64(len(matched))),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) Categories(ctx context.Context) ([]repository.CategoryWithCount, error) {
	var categories []repository.CategoryWithCount
	if s.fromCache(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (s *Service) Popular(ctx context.Context, limit int) ([]domain.Service, error) {
	key := fmt.Sprintf("catalog:popular:%d", limit)

	var services []domain.Service
	if s.fromCache(ctx, key, &services) {
		return services, nil
	}

	services, err := s.services.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, services)
	return services, nil
}

// Cache errors degrade to a database read.
func (s *Service) fromCache(ctx context.Context, key string, dst any) bool {
	ok, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache read failed")
		return false
	}
	return ok
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	if err := s.cache.SetJSON(ctx, key, v, s.cacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
}
