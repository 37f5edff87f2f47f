package services

import (
	"context"
	"sync"
	"time"

	"aqi-dashboard/internal/models"
	"aqi-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type cacheEntry struct {
	observations []models.Observation
	expiresAt    time.Time
}

// CachedGateway memoizes gateway results per ZIP code for a freshness
// window. The API key is fixed per inner gateway instance, so the effective
// cache key is credential plus ZIP. Only successful fetches are cached,
// empty results included; errors always fall through so a flaky upstream can
// recover. Callers cannot tell a hit from a fresh fetch, which is the point.
type CachedGateway struct {
	inner   Gateway
	clock   clockwork.Clock
	ttl     time.Duration
	maxSize int
	logger  *zap.Logger
	metrics *observability.Metrics

	mu          sync.RWMutex
	entries     map[string]cacheEntry
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewCachedGateway(inner Gateway, ttl time.Duration, maxSize int, clock clockwork.Clock, metrics *observability.Metrics, logger *zap.Logger) *CachedGateway {
	c := &CachedGateway{
		inner:       inner,
		clock:       clock,
		ttl:         ttl,
		maxSize:     maxSize,
		logger:      logger,
		metrics:     metrics,
		entries:     make(map[string]cacheEntry),
		stopCleanup: make(chan struct{}),
	}

	go c.startCleanup()

	return c
}

func (c *CachedGateway) Observations(ctx context.Context, zipCode string) ([]models.Observation, error) {
	if observations, ok := c.get(zipCode); ok {
		c.metrics.CacheLookups.WithLabelValues(observability.ResultHit).Inc()
		c.logger.Debug("Observation cache hit", zap.String("zip_code", zipCode))
		return observations, nil
	}
	c.metrics.CacheLookups.WithLabelValues(observability.ResultMiss).Inc()

	observations, err := c.inner.Observations(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	c.put(zipCode, observations)
	return observations, nil
}

func (c *CachedGateway) get(zipCode string) ([]models.Observation, bool) {
	c.mu.RLock()
	entry, exists := c.entries[zipCode]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, zipCode)
		c.mu.Unlock()
		return nil, false
	}

	return entry.observations, true
}

func (c *CachedGateway) put(zipCode string, observations []models.Observation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[zipCode] = cacheEntry{
		observations: observations,
		expiresAt:    c.clock.Now().Add(c.ttl),
	}
}

// evictOldest removes the entry closest to expiry. Caller holds the lock.
func (c *CachedGateway) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.logger.Debug("Evicted oldest observation cache entry",
			zap.String("zip_code", oldestKey))
	}
}

func (c *CachedGateway) startCleanup() {
	ticker := c.clock.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *CachedGateway) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	expiredCount := 0

	for zipCode, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, zipCode)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired observation cache entries",
			zap.Int("count", expiredCount))
	}
}

func (c *CachedGateway) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

// Len returns the number of cached entries, expired or not.
func (c *CachedGateway) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
