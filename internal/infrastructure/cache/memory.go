package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCooldown marcadores en memoria del proceso con expiración por clave.
type MemoryCooldown struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

// NewMemoryCooldown crea un store vacío. now nil = time.Now.
func NewMemoryCooldown(now func() time.Time) *MemoryCooldown {
	if now == nil {
		now = time.Now
	}
	return &MemoryCooldown{items: map[string]time.Time{}, now: now}
}

func (c *MemoryCooldown) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if !c.now().Before(exp) {
		delete(c.items, key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCooldown) Set(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = c.now().Add(ttl)
	return nil
}

func (c *MemoryCooldown) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}
