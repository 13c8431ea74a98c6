package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

var ErrCacheMiss = errors.New("profile cache miss")

type Cache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Set(ctx context.Context, userID uuid.UUID, p *models.Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ======================================================
// In-process cache
// ======================================================

type memoryEntry struct {
	profile   models.Profile
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, ErrCacheMiss
	}
	p := e.profile
	return &p, nil
}

func (c *MemoryCache) Set(_ context.Context, userID uuid.UUID, p *models.Profile) error {
	c.mu.Lock()
	c.entries[userID] = memoryEntry{profile: *p, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	return nil
}

// ======================================================
// Redis cache
// ======================================================

const redisKeyPrefix = "profile:"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func redisKey(userID uuid.UUID) string {
	return redisKeyPrefix + userID.String()
}

func (c *RedisCache) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	raw, err := c.client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisCache) Set(ctx context.Context, userID uuid.UUID, p *models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(userID), raw, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, redisKey(userID)).Err()
}
