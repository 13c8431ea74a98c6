package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// CachedResolver fronts a Resolver with a Cache. Cache failures are logged
// and never fail a resolution.
type CachedResolver struct {
	inner  Resolver
	cache  Cache
	logger *zap.Logger
}

func NewCachedResolver(inner Resolver, cache Cache, logger *zap.Logger) *CachedResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResolver{inner: inner, cache: cache, logger: logger}
}

func (r *CachedResolver) Resolve(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := r.cache.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		r.logger.Warn("profile cache read failed", zap.Error(err))
	}

	p, err = r.inner.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, userID, p); err != nil {
		r.logger.Warn("profile cache write failed", zap.Error(err))
	}
	return p, nil
}

// Invalidate drops the cached profile after it changed.
func (r *CachedResolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := r.cache.Delete(ctx, userID); err != nil {
		r.logger.Warn("profile cache invalidation failed", zap.Error(err))
	}
}
