package repository

import (
	"context"
	"time"

	domrepo "MomentumReport/internal/domain/repository"
	"MomentumReport/pkg/cache"
)

// CacheDeliveryGuard marks a report date as delivered with a cache lock.
// Backed by Redis it holds across processes; backed by memory only within one.
type CacheDeliveryGuard struct {
	cache cache.Service
	ttl   time.Duration
}

func NewCacheDeliveryGuard(c cache.Service, ttl time.Duration) *CacheDeliveryGuard {
	if ttl <= 0 {
		ttl = 36 * time.Hour
	}
	return &CacheDeliveryGuard{cache: c, ttl: ttl}
}

func guardKey(date string) string {
	return cache.GenerateKey("delivery", date)
}

// Acquire returns false when date was already claimed.
func (g *CacheDeliveryGuard) Acquire(ctx context.Context, date string) (bool, error) {
	return g.cache.TryLock(ctx, guardKey(date), g.ttl)
}

// Release frees date so a later attempt may deliver it.
func (g *CacheDeliveryGuard) Release(ctx context.Context, date string) error {
	return g.cache.Unlock(ctx, guardKey(date))
}

var _ domrepo.DeliveryGuard = (*CacheDeliveryGuard)(nil)
