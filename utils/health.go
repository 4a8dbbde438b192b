package utils

import (
	"context"
	"sync"
	"time"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Cache     bool      `json:"cache"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Pinger is anything that can report reachability, such as the Mongo or Redis client.
type Pinger func(ctx context.Context) error

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings the store and the cache once and stores the snapshot.
// A nil cache pinger counts as healthy since the cache is optional.
func CheckHealth(ctx context.Context, store, cache Pinger) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := HealthStatus{Store: true, Cache: true, CheckedAt: time.Now()}
	if store != nil {
		status.Store = store(ctx) == nil
	}
	if cache != nil {
		status.Cache = cache(ctx) == nil
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}
