package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type stubBackend struct {
	vehicles []models.Vehicle
	pings    int
}

func (s *stubBackend) FetchFiltered(_ context.Context, _ FilterQuery) ([]models.Vehicle, error) {
	return s.vehicles, nil
}

func (s *stubBackend) FetchRelevant(_ context.Context, _ RelevanceQuery) ([]models.Vehicle, error) {
	return s.vehicles, nil
}

func (s *stubBackend) BrandSimilarities(_ context.Context, _ []string, _ int) ([]BrandAffinity, error) {
	return []BrandAffinity{{Brand: "Honda", MeanWeight: 0.8, EdgeCount: 1}}, nil
}

func (s *stubBackend) Ping(_ context.Context) error {
	s.pings++
	return nil
}

func assertStoreUnavailable(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	se, ok := err.(*apperrors.StandardError)
	require.True(t, ok, "expected a StandardError, got %T", err)
	assert.Equal(t, apperrors.ErrCodeStoreUnavailable, se.Code)
	assert.True(t, se.Retryable)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestReconnecting_UnattachedFailsEveryQuery(t *testing.T) {
	ctx := context.Background()
	rec := NewReconnecting(createTestLogger(t))

	assert.False(t, rec.Ready())

	_, err := rec.FetchFiltered(ctx, FilterQuery{Limit: 5})
	assertStoreUnavailable(t, err)

	_, err = rec.FetchRelevant(ctx, RelevanceQuery{Limit: 5})
	assertStoreUnavailable(t, err)

	_, err = rec.BrandSimilarities(ctx, []string{"Toyota"}, 5)
	assertStoreUnavailable(t, err)

	assertStoreUnavailable(t, rec.Ping(ctx))
}

func TestReconnecting_AttachDelegates(t *testing.T) {
	ctx := context.Background()
	backend := &stubBackend{
		vehicles: []models.Vehicle{{ID: "car_1", Brand: "Toyota", Model: "Corolla"}},
	}
	rec := NewReconnecting(createTestLogger(t))

	rec.Attach(backend, func() {})

	assert.True(t, rec.Ready())

	vehicles, err := rec.FetchRelevant(ctx, RelevanceQuery{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)
	assert.Equal(t, "car_1", vehicles[0].ID)

	affinities, err := rec.BrandSimilarities(ctx, []string{"Toyota"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "Honda", affinities[0].Brand)

	require.NoError(t, rec.Ping(ctx))
	assert.Equal(t, 1, backend.pings)
}

func TestReconnecting_CloseDetachesBackend(t *testing.T) {
	ctx := context.Background()
	closed := false
	rec := NewReconnecting(createTestLogger(t))
	rec.Attach(&stubBackend{}, func() { closed = true })

	rec.Close()

	assert.True(t, closed)
	assert.False(t, rec.Ready())
	assertStoreUnavailable(t, rec.Ping(ctx))
}

func TestReconnecting_CloseWithoutBackend(t *testing.T) {
	rec := NewReconnecting(createTestLogger(t))

	assert.NotPanics(t, rec.Close)
}
