// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Cache is the JSON key/value store used for read-through caching.
// core.Redis satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const cachePrefix = "catalog:v1:"

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// NewService builds the catalog service. A nil cache or a zero ttl turns
// caching off.
func NewService(repo Repository, cache Cache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

func (s *Service) ListRegions(ctx context.Context) ([]Region, error) {
	return cached(ctx, s, cachePrefix+"regions", func() ([]Region, error) {
		return s.repo.ListRegions(ctx)
	})
}

// ListSpecies returns the species of a region. An unknown region is
// core.ErrNotFound rather than an empty list.
func (s *Service) ListSpecies(ctx context.Context, regionID int) ([]Species, error) {
	key := fmt.Sprintf("%sregions:%d:species", cachePrefix, regionID)
	return cached(ctx, s, key, func() ([]Species, error) {
		if _, err := s.repo.GetRegion(ctx, regionID); err != nil {
			return nil, err
		}
		return s.repo.ListSpeciesByRegion(ctx, regionID)
	})
}

func (s *Service) GetSpecies(ctx context.Context, id int) (*Species, error) {
	key := fmt.Sprintf("%sspecies:%d", cachePrefix, id)
	return cached(ctx, s, key, func() (*Species, error) {
		return s.repo.GetSpecies(ctx, id)
	})
}

// cached serves key from the cache when possible. Cache errors are logged
// and fall through to load; load errors are never cached.
func cached[T any](
	ctx context.Context,
	s *Service,
	key string,
	load func() (T, error),
) (T, error) {
	if s.cache == nil || s.ttl <= 0 {
		return load()
	}

	var hit T
	found, err := s.cache.GetJSON(ctx, key, &hit)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
	}
	if found {
		return hit, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}

	return value, nil
}
