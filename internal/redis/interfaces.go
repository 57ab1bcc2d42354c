package redis

import (
	"context"
	"time"
)

// KPICacheInterface defines the interface for caching dashboard KPIs.
type KPICacheInterface interface {
	GetLatestKPIs(ctx context.Context) (*CachedKPIs, error)
	SetLatestKPIs(ctx context.Context, kpis *CachedKPIs) error
	SetLatestKPIsIfAbsent(ctx context.Context, kpis *CachedKPIs) (bool, error)
	InvalidateLatestKPIs(ctx context.Context) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseLock(ctx context.Context, name, token string) error
}

// EventPublisherInterface defines the interface for announcing simulation events.
type EventPublisherInterface interface {
	Publish(ctx context.Context, evt SimulationEvent) error
}

// EventSubscriberInterface defines the interface for following simulation events.
type EventSubscriberInterface interface {
	Subscribe(ctx context.Context) (*Subscription, error)
}

// Ensure concrete types implement interfaces.
var (
	_ KPICacheInterface        = (*CacheStore)(nil)
	_ LockStoreInterface       = (*LockStore)(nil)
	_ EventPublisherInterface  = (*EventBus)(nil)
	_ EventSubscriberInterface = (*EventBus)(nil)
)
