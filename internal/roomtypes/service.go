package roomtypes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomly/pkg/cache"
	"roomly/pkg/logger"

	"gorm.io/gorm"
)

// Service resolves the scheduling policy for a room category.
type Service interface {
	// Resolve returns the persisted configuration for category if one exists,
	// otherwise a built-in default. A missing row is not an error.
	Resolve(ctx context.Context, category string) (Policy, error)

	// Admin configuration management
	GetAllConfigs(ctx context.Context) ([]RoomTypeConfig, error)
	UpsertConfig(ctx context.Context, req UpsertConfigRequest) (*RoomTypeConfig, error)
	DeleteConfig(ctx context.Context, category string) error

	// SetCacheService injects the optional Redis cache layer
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	defaults     map[string]Policy
	cacheService cache.Service
	cacheTTL     time.Duration
}

// NewService creates a room type service. defaults is the immutable fallback
// table; pass DefaultPolicies() in production wiring.
func NewService(repo Repository, defaults map[string]Policy) Service {
	return &service{
		repo:     repo,
		defaults: defaults,
		cacheTTL: 5 * time.Minute,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Resolve(ctx context.Context, category string) (Policy, error) {
	if category == "" {
		return Policy{}, errors.New("room category is required")
	}

	// Cache-aside lookup when a cache layer is wired
	if s.cacheService != nil {
		var cached Policy
		key := cacheKey(category)
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	policy, err := s.resolveFromStore(ctx, category)
	if err != nil {
		return Policy{}, err
	}

	if s.cacheService != nil {
		// Fire and forget; a failed cache write never fails the resolution
		go func() {
			_ = s.cacheService.Set(context.Background(), cacheKey(category), policy, s.cacheTTL)
		}()
	}

	return policy, nil
}

func (s *service) resolveFromStore(ctx context.Context, category string) (Policy, error) {
	config, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Configuration missing is resolved via the fallback table
			logger.GetDefault().LogRoomTypeFallback(ctx, category)
			return s.defaultPolicy(category), nil
		}
		return Policy{}, fmt.Errorf("failed to load room type config: %w", err)
	}

	if config.Capacity < 1 {
		return Policy{}, fmt.Errorf("invalid room type config for %s: capacity must be at least 1", category)
	}

	return config.ToPolicy(), nil
}

func (s *service) defaultPolicy(category string) Policy {
	if policy, ok := s.defaults[category]; ok {
		return policy
	}
	return s.defaults[FallbackCategory]
}

func (s *service) GetAllConfigs(ctx context.Context) ([]RoomTypeConfig, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpsertConfig(ctx context.Context, req UpsertConfigRequest) (*RoomTypeConfig, error) {
	if req.Capacity < 1 {
		return nil, errors.New("capacity must be at least 1")
	}
	if req.PreBufferMin < 0 || req.PostBufferMin < 0 {
		return nil, errors.New("buffers must not be negative")
	}

	config := &RoomTypeConfig{
		Category:      req.Category,
		Capacity:      req.Capacity,
		PreBufferMin:  req.PreBufferMin,
		PostBufferMin: req.PostBufferMin,
	}

	if err := s.repo.Upsert(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to upsert room type config: %w", err)
	}

	s.invalidateCache(ctx, req.Category)
	return config, nil
}

func (s *service) DeleteConfig(ctx context.Context, category string) error {
	if err := s.repo.DeleteByCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to delete room type config: %w", err)
	}
	s.invalidateCache(ctx, category)
	return nil
}

func (s *service) invalidateCache(ctx context.Context, category string) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, cacheKey(category))
}

func cacheKey(category string) string {
	return "roomly:roomtypes:policy:" + category
}
