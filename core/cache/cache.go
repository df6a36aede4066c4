package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roombook/core/constants"
)

// Cache stores rendered month projections. Every successful reservation
// mutation invalidates the affected month keys so readers never see a
// stale grid longer than the TTL.
type Cache interface {
	GetMonth(ctx context.Context, year, month int) ([]byte, error)
	SetMonth(ctx context.Context, year, month int, payload []byte) error
	InvalidateMonth(ctx context.Context, year, month int) error
}

func monthKey(year, month int) string {
	return fmt.Sprintf("month:%04d-%02d", year, month)
}

// ===================== In-process fallback =====================

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryCache returns the in-process cache used when Redis is not
// configured.
func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (c *memoryCache) GetMonth(_ context.Context, year, month int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[monthKey(year, month)]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.payload, nil
}

func (c *memoryCache) SetMonth(_ context.Context, year, month int, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[monthKey(year, month)] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(constants.MonthViewTTLSeconds * time.Second),
	}
	return nil
}

func (c *memoryCache) InvalidateMonth(_ context.Context, year, month int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, monthKey(year, month))
	return nil
}
