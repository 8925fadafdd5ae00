package recommender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender/affinity"
	"github.com/Pjezz/carmatch/internal/recommender/prefs"
	"github.com/Pjezz/carmatch/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeStore struct {
	filtered      []models.Vehicle
	relevant      []models.Vehicle
	relaxed       []models.Vehicle
	affinities    []store.BrandAffinity
	filteredErr   error
	relevantErr   error
	relevantCalls int
}

func (f *fakeStore) FetchFiltered(_ context.Context, _ store.FilterQuery) ([]models.Vehicle, error) {
	return f.filtered, f.filteredErr
}

func (f *fakeStore) FetchRelevant(_ context.Context, q store.RelevanceQuery) ([]models.Vehicle, error) {
	f.relevantCalls++
	if f.relevantErr != nil {
		return nil, f.relevantErr
	}
	// A query without brands or budget is the relaxed retry
	if len(q.RelevantBrands) == 0 && q.Budget == nil && f.relaxed != nil {
		return f.relaxed, nil
	}
	return f.relevant, nil
}

func (f *fakeStore) BrandSimilarities(_ context.Context, _ []string, _ int) ([]store.BrandAffinity, error) {
	return f.affinities, nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return nil
}

// panickingStore blows up inside the candidate fetch to simulate an
// unexpected internal failure mid-pipeline.
type panickingStore struct {
	fakeStore
}

func (p *panickingStore) FetchRelevant(_ context.Context, _ store.RelevanceQuery) ([]models.Vehicle, error) {
	panic("corrupted candidate row")
}

func testConfig() config.RecommenderConfig {
	return config.RecommenderConfig{
		DefaultLimit:        5,
		MaxLimit:            10,
		CandidateMultiplier: 3,
		MinFilterConditions: 2,
		SimilarBrandLimit:   10,
	}
}

func createTestService(t *testing.T, catalog store.CatalogStore) *Service {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	resolver := affinity.NewResolver(catalog, nil, 10, time.Minute, log)
	return NewService(testConfig(), catalog, resolver, log)
}

func vehicle(id, brand, model, vtype string, price float64) models.Vehicle {
	return models.Vehicle{
		ID:           id,
		Brand:        brand,
		Model:        model,
		Year:         2024,
		Price:        price,
		Type:         vtype,
		Fuel:         "Gasolina",
		Transmission: "Automática",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestService_Recommend_CatalogPath(t *testing.T) {
	catalog := &fakeStore{
		relevant: []models.Vehicle{
			vehicle("1", "Toyota", "Corolla", "Sedán", 25000),
			vehicle("2", "Honda", "CR-V", "SUV", 35000),
			vehicle("3", "Mazda", "CX-5", "SUV", 32000),
		},
	}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
	})

	assert.Equal(t, SourceCatalog, result.Source)
	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, "hombre_26_35", result.ProfileID)
	assert.NotEmpty(t, result.Recommendations)
	// Toyota carries the exact-brand credit and leads the list
	assert.Equal(t, "Toyota", result.Recommendations[0].Brand)
	for _, rec := range result.Recommendations {
		assert.NotEmpty(t, rec.Explanation)
		assert.GreaterOrEqual(t, rec.SimilarityScore, 0.0)
		assert.LessOrEqual(t, rec.SimilarityScore, 100.0)
	}
}

func TestService_Recommend_MatchTypeLabels(t *testing.T) {
	catalog := &fakeStore{
		relevant: []models.Vehicle{
			vehicle("1", "Toyota", "Corolla", "Sedán", 25000),
			vehicle("2", "Honda", "CR-V", "SUV", 35000),
		},
	}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
		Types:  []interface{}{"sedan"},
	})

	byID := map[string]models.Recommendation{}
	for _, rec := range result.Recommendations {
		byID[rec.ID] = rec
	}

	assert.Equal(t, models.MatchFiltered, byID["1"].MatchType)
	assert.Equal(t, models.MatchRecommended, byID["2"].MatchType)
}

func TestService_Recommend_MergesAndDeduplicates(t *testing.T) {
	shared := vehicle("1", "Toyota", "Corolla", "Sedán", 25000)
	catalog := &fakeStore{
		filtered: []models.Vehicle{shared},
		relevant: []models.Vehicle{
			shared,
			vehicle("2", "Honda", "CR-V", "SUV", 35000),
		},
	}
	svc := createTestService(t, catalog)

	// Two filter conditions trigger the exact-filter query as well
	result := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
		Budget: "20000-40000",
	})

	assert.Equal(t, SourceCatalog, result.Source)
	seen := map[string]int{}
	for _, rec := range result.Recommendations {
		seen[rec.ID]++
	}
	assert.Equal(t, 1, seen["1"], "shared vehicle must appear once")
}

func TestService_Recommend_LimitClamping(t *testing.T) {
	var vehicles []models.Vehicle
	for i := 0; i < 30; i++ {
		vehicles = append(vehicles, vehicle(
			string(rune('a'+i)), "Toyota", "Corolla", "Sedán", float64(20000+i*500)))
	}
	catalog := &fakeStore{relevant: vehicles}
	svc := createTestService(t, catalog)

	over := svc.Recommend(context.Background(), &prefs.Input{Limit: 100})
	assert.LessOrEqual(t, len(over.Recommendations), 10)

	unset := svc.Recommend(context.Background(), &prefs.Input{})
	assert.LessOrEqual(t, len(unset.Recommendations), 5)
}

// ==========================
// Degradation Tests
// ==========================

func TestService_Recommend_StoreErrorFallsBack(t *testing.T) {
	catalog := &fakeStore{
		relevantErr: errors.NewStoreUnavailableError(assert.AnError),
	}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), &prefs.Input{
		Gender:   "femenino",
		AgeRange: "26-35",
	})

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "mujer_26_35", result.ProfileID)
	assert.NotEmpty(t, result.Recommendations)
}

func TestService_Recommend_EmptyCatalogTriggersRelaxedRetry(t *testing.T) {
	catalog := &fakeStore{
		relevant: []models.Vehicle{},
		relaxed: []models.Vehicle{
			vehicle("1", "Kia", "Sportage", "SUV", 27000),
		},
	}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), &prefs.Input{
		Budget: "1-2",
	})

	assert.Equal(t, SourceCatalog, result.Source)
	assert.Equal(t, 2, catalog.relevantCalls, "expected the relaxed retry")
	assert.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Kia", result.Recommendations[0].Brand)
}

func TestService_Recommend_NothingAnywhereFallsBack(t *testing.T) {
	catalog := &fakeStore{}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), &prefs.Input{})

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Recommendations)
}

func TestService_Recommend_StoreNotYetConnectedServesFallback(t *testing.T) {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	catalog := store.NewReconnecting(log)
	resolver := affinity.NewResolver(catalog, nil, 10, time.Minute, log)
	svc := NewService(testConfig(), catalog, resolver, log)

	// No backend attached yet, as during a slow catalog bootstrap
	result := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
	})

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Recommendations)

	catalog.Attach(&fakeStore{
		relevant: []models.Vehicle{vehicle("1", "Toyota", "Corolla", "Sedán", 25000)},
	}, func() {})

	recovered := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
	})
	assert.Equal(t, SourceCatalog, recovered.Source)
}

func TestService_Recommend_PanicDegradesToFallback(t *testing.T) {
	svc := createTestService(t, &panickingStore{})

	result := svc.Recommend(context.Background(), &prefs.Input{
		Brands: []interface{}{"Toyota"},
	})

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.RequestID)
	assert.NotEmpty(t, result.Recommendations)
	for _, rec := range result.Recommendations {
		assert.NotEmpty(t, rec.Explanation)
	}
}

func TestService_Recommend_NilInput(t *testing.T) {
	catalog := &fakeStore{
		relevant: []models.Vehicle{
			vehicle("1", "Toyota", "Corolla", "Sedán", 25000),
		},
	}
	svc := createTestService(t, catalog)

	result := svc.Recommend(context.Background(), nil)

	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Recommendations)
}
