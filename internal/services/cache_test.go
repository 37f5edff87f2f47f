package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"aqi-dashboard/internal/models"
	"aqi-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingGateway records calls and serves a canned response per ZIP.
type countingGateway struct {
	calls        int
	observations map[string][]models.Observation
	err          error
}

func (g *countingGateway) Observations(_ context.Context, zipCode string) ([]models.Observation, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.observations[zipCode], nil
}

func newTestCache(t *testing.T, inner Gateway, ttl time.Duration, maxSize int, clock clockwork.Clock) *CachedGateway {
	t.Helper()
	cache := NewCachedGateway(inner, ttl, maxSize, clock, observability.NewMetricsForTesting(), zap.NewNop())
	t.Cleanup(cache.Stop)
	return cache
}

func TestCachedGateway_Hit(t *testing.T) {
	inner := &countingGateway{observations: map[string][]models.Observation{
		"90012": {{Parameter: models.ParameterPM25, AQI: 40}},
	}}
	cache := newTestCache(t, inner, time.Hour, 10, clockwork.NewFakeClock())

	first, err := cache.Observations(context.Background(), "90012")
	require.NoError(t, err)
	second, err := cache.Observations(context.Background(), "90012")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second lookup must be served from cache")
}

func TestCachedGateway_ExpiryRefetches(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingGateway{observations: map[string][]models.Observation{
		"90012": {{Parameter: models.ParameterO3, AQI: 70}},
	}}
	cache := newTestCache(t, inner, time.Hour, 10, clock)

	_, err := cache.Observations(context.Background(), "90012")
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Minute)

	_, err = cache.Observations(context.Background(), "90012")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entry must be refetched")
}

func TestCachedGateway_EmptyResultIsCached(t *testing.T) {
	// A ZIP with no reporting station is a valid answer worth an hour of quiet.
	inner := &countingGateway{observations: map[string][]models.Observation{}}
	cache := newTestCache(t, inner, time.Hour, 10, clockwork.NewFakeClock())

	_, err := cache.Observations(context.Background(), "96001")
	require.NoError(t, err)
	_, err = cache.Observations(context.Background(), "96001")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedGateway_ErrorsNotCached(t *testing.T) {
	inner := &countingGateway{err: errors.New("upstream down")}
	cache := newTestCache(t, inner, time.Hour, 10, clockwork.NewFakeClock())

	_, err := cache.Observations(context.Background(), "90012")
	require.Error(t, err)
	_, err = cache.Observations(context.Background(), "90012")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls, "failures must fall through to the gateway")
}

func TestCachedGateway_DifferentZipsMiss(t *testing.T) {
	inner := &countingGateway{observations: map[string][]models.Observation{}}
	cache := newTestCache(t, inner, time.Hour, 10, clockwork.NewFakeClock())

	_, _ = cache.Observations(context.Background(), "90012")
	_, _ = cache.Observations(context.Background(), "93721")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGateway_EvictsAtMaxSize(t *testing.T) {
	inner := &countingGateway{observations: map[string][]models.Observation{}}
	cache := newTestCache(t, inner, time.Hour, 2, clockwork.NewFakeClock())

	_, _ = cache.Observations(context.Background(), "90012")
	_, _ = cache.Observations(context.Background(), "93721")
	_, _ = cache.Observations(context.Background(), "95814")

	assert.Equal(t, 2, cache.Len())
}
