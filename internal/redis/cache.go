package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"greencart/internal/domain"
)

// DefaultKPICacheTTL is used when a non-positive TTL is configured.
const DefaultKPICacheTTL = 5 * time.Minute

const latestKPIsKey = "cache:kpis:latest"

// CachedKPIs is the cached result of the most recent simulation.
type CachedKPIs struct {
	SimulationID string           `json:"simulation_id"`
	KPIs         domain.KPIResult `json:"kpis"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CacheStore handles dashboard caching in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	if ttl <= 0 {
		ttl = DefaultKPICacheTTL
	}
	return &CacheStore{client: client, ttl: ttl}
}

// GetLatestKPIs retrieves the latest simulation KPIs. Returns nil on a cache miss.
func (s *CacheStore) GetLatestKPIs(ctx context.Context) (*CachedKPIs, error) {
	data, err := s.client.Get(ctx, latestKPIsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cached CachedKPIs
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// SetLatestKPIs stores the latest simulation KPIs.
func (s *CacheStore) SetLatestKPIs(ctx context.Context, kpis *CachedKPIs) error {
	data, err := json.Marshal(kpis)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, latestKPIsKey, data, s.ttl).Err()
}

// SetLatestKPIsIfAbsent stores kpis only when no entry is cached and reports
// whether it was stored. Read-side back-fills use it so they never replace
// KPIs written by a newer simulation.
func (s *CacheStore) SetLatestKPIsIfAbsent(ctx context.Context, kpis *CachedKPIs) (bool, error) {
	data, err := json.Marshal(kpis)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, latestKPIsKey, data, s.ttl).Result()
}

// InvalidateLatestKPIs removes the cached KPIs.
func (s *CacheStore) InvalidateLatestKPIs(ctx context.Context) error {
	return s.client.Del(ctx, latestKPIsKey).Err()
}
