// Package cache keeps per-status order counts in memory between refreshes.
package cache

import (
	"context"
	"fmt"
	"time"

	"notpickedup/internal/core/application/usecases/commands"
	"notpickedup/internal/core/application/usecases/queries"
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/ports"

	gocache "github.com/patrickmn/go-cache"
)

const (
	countsKey  = "status_counts"
	defaultTTL = 5 * time.Minute
)

// StatusCountLoader reads fresh counts from the order store.
type StatusCountLoader interface {
	Handle(ctx context.Context, query queries.GetStatusCountsQuery) (queries.StatusCounts, error)
}

// StatusCountCache is a read-through cache in front of the status count query.
// Committed status changes and newly created orders invalidate it.
type StatusCountCache struct {
	backend *gocache.Cache
	loader  StatusCountLoader
	ttl     time.Duration
}

var (
	_ ports.EventPublisher          = (*StatusCountCache)(nil)
	_ commands.OrderCreatedListener = (*StatusCountCache)(nil)
)

// NewStatusCountCache creates the cache. A non-positive ttl selects the default.
func NewStatusCountCache(loader StatusCountLoader, ttl time.Duration) *StatusCountCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &StatusCountCache{
		backend: gocache.New(ttl, 2*ttl),
		loader:  loader,
		ttl:     ttl,
	}
}

// Counts returns the cached counts, loading them on a miss.
func (c *StatusCountCache) Counts(ctx context.Context) (queries.StatusCounts, error) {
	if raw, ok := c.backend.Get(countsKey); ok {
		if counts, isCounts := raw.(queries.StatusCounts); isCounts {
			return copyCounts(counts), nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh loads the counts and replaces the cached value.
func (c *StatusCountCache) Refresh(ctx context.Context) (queries.StatusCounts, error) {
	counts, err := c.loader.Handle(ctx, queries.NewGetStatusCountsQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to load status counts: %w", err)
	}
	c.backend.Set(countsKey, copyCounts(counts), c.ttl)
	return counts, nil
}

// Invalidate drops the cached counts; the next read loads them again.
func (c *StatusCountCache) Invalidate() {
	c.backend.Delete(countsKey)
}

// Publish drops the cached counts once status changes are committed.
func (c *StatusCountCache) Publish(_ context.Context, events []order.StatusChanged) error {
	if len(events) > 0 {
		c.Invalidate()
	}
	return nil
}

// OrderCreated drops the cached counts once a new order is committed.
func (c *StatusCountCache) OrderCreated(context.Context, kernel.OrderID) {
	c.Invalidate()
}

func copyCounts(in queries.StatusCounts) queries.StatusCounts {
	out := make(queries.StatusCounts, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
