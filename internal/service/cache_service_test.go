package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/trainer-planning-api/internal/models"
)

func TestCacheServiceDisabledIsTransparent(t *testing.T) {
	svc := NewCacheService(&cacheRepoMock{}, nil, 0, nil, false)
	var dest []models.AvailabilityEntry

	hit, err := svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, svc.Set(context.Background(), "k", dest, 0))
	assert.NoError(t, svc.Invalidate(context.Background(), "*"))

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceHitMissAndFailure(t *testing.T) {
	repo := &cacheRepoMock{}
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Minute, nil, true)
	ctx := context.Background()
	var dest []models.AvailabilityEntry

	hit, err := svc.Get(ctx, "availability:a", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "availability:a", []models.AvailabilityEntry{{ID: "av-1"}}, 0))
	hit, err = svc.Get(ctx, "availability:a", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, dest, 1)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheMisses))

	repo.getErr = errors.New("redis down")
	hit, err = svc.Get(ctx, "availability:a", &dest)
	assert.Error(t, err)
	assert.False(t, hit)
}
