package service

import (
	"context"
	"log"
	"time"

	"entrenador/gym-platform/internal/cache"
	"entrenador/gym-platform/internal/catalog"
	"entrenador/gym-platform/internal/domain"
)

// --- Service Interface ---

// CatalogService serves the external exercise catalog through an edge
// cache. The upstream API is slow and rate-limited, so every response
// is cached; reference lists (muscles, equipment) change rarely and get
// the maximum TTL.
type CatalogService interface {
	ListExercises(ctx context.Context, query catalog.ExerciseQuery) (*domain.CatalogPage, error)
	ListMuscles(ctx context.Context) ([]domain.CatalogMuscle, error)
	ListEquipment(ctx context.Context) ([]domain.CatalogEquipment, error)
}

type catalogService struct {
	client *catalog.Client
	cache  *cache.Cache
	ttl    time.Duration
}

// NewCatalogService creates a catalog service. The cache may be nil,
// in which case every request goes straight upstream.
func NewCatalogService(client *catalog.Client, c *cache.Cache, ttl time.Duration) CatalogService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &catalogService{client: client, cache: c, ttl: ttl}
}

// ListExercises fetches one filtered catalog page, consulting the
// cache first.
func (s *catalogService) ListExercises(ctx context.Context, query catalog.ExerciseQuery) (*domain.CatalogPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	key := query.CacheKey()
	if s.cache != nil {
		var page domain.CatalogPage
		if hit, err := s.cache.Get(ctx, key, &page); err == nil && hit {
			return &page, nil
		}
	}

	page, err := s.client.ListExercises(ctx, query)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, page, s.ttl)
	return page, nil
}

// ListMuscles returns the muscle group reference list.
func (s *catalogService) ListMuscles(ctx context.Context) ([]domain.CatalogMuscle, error) {
	if s.cache != nil {
		var muscles []domain.CatalogMuscle
		if hit, err := s.cache.Get(ctx, "muscles", &muscles); err == nil && hit {
			return muscles, nil
		}
	}

	muscles, err := s.client.ListMuscles(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, "muscles", muscles, cache.MaxTTL)
	return muscles, nil
}

// ListEquipment returns the equipment reference list.
func (s *catalogService) ListEquipment(ctx context.Context) ([]domain.CatalogEquipment, error) {
	if s.cache != nil {
		var equipment []domain.CatalogEquipment
		if hit, err := s.cache.Get(ctx, "equipment", &equipment); err == nil && hit {
			return equipment, nil
		}
	}

	equipment, err := s.client.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, "equipment", equipment, cache.MaxTTL)
	return equipment, nil
}

// store writes to the cache best-effort. A cache failure never fails
// the request.
func (s *catalogService) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		log.Printf("WARN: could not cache catalog response %s: %v", key, err)
	}
}
