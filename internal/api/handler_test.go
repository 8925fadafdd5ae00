package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender"
	"github.com/Pjezz/carmatch/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

type staticCatalog struct {
	vehicles []models.Vehicle
	pingErr  error
}

func (s *staticCatalog) FetchFiltered(_ context.Context, _ store.FilterQuery) ([]models.Vehicle, error) {
	return nil, nil
}

func (s *staticCatalog) FetchRelevant(_ context.Context, _ store.RelevanceQuery) ([]models.Vehicle, error) {
	return s.vehicles, nil
}

func (s *staticCatalog) BrandSimilarities(_ context.Context, _ []string, _ int) ([]store.BrandAffinity, error) {
	return nil, nil
}

func (s *staticCatalog) Ping(_ context.Context) error {
	return s.pingErr
}

func createTestHandler(t *testing.T, catalog store.CatalogStore) *Handler {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	cfg := config.RecommenderConfig{
		DefaultLimit:        5,
		MaxLimit:            10,
		CandidateMultiplier: 3,
		MinFilterConditions: 2,
	}
	svc := recommender.NewService(cfg, catalog, nil, log)
	return NewHandler(svc, nil, 5*time.Second, log)
}

func testMux(t *testing.T, catalog store.CatalogStore) *http.ServeMux {
	mux := http.NewServeMux()
	createTestHandler(t, catalog).Register(mux)
	return mux
}

// ==========================
// Recommendation Endpoint Tests
// ==========================

func TestHandler_Recommendations_Success(t *testing.T) {
	catalog := &staticCatalog{
		vehicles: []models.Vehicle{
			{ID: "1", Brand: "Toyota", Model: "Corolla", Year: 2024, Price: 25000,
				Type: "Sedán", Fuel: "Gasolina", Transmission: "Automática"},
		},
	}
	mux := testMux(t, catalog)

	body := `{"brands": ["Toyota"], "budget": "20000-30000", "gender": "masculino", "ageRange": "26-35"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result recommender.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recommender.SourceCatalog, result.Source)
	assert.Equal(t, "hombre_26_35", result.ProfileID)
	assert.NotEmpty(t, result.Recommendations)
}

func TestHandler_Recommendations_EmptyBodyStillAnswers(t *testing.T) {
	mux := testMux(t, &staticCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result recommender.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, recommender.SourceFallback, result.Source)
	assert.NotEmpty(t, result.Recommendations)
}

func TestHandler_Recommendations_InvalidJSON(t *testing.T) {
	mux := testMux(t, &staticCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Recommendations_StructurallyInvalid(t *testing.T) {
	mux := testMux(t, &staticCatalog{})

	// limit must be numeric even though preference fields are polymorphic
	body := `{"brands": ["Toyota"], "limit": "five"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "malformed request", resp["error"])
	assert.NotEmpty(t, resp["details"])
}

func TestHandler_Recommendations_MethodNotAllowed(t *testing.T) {
	mux := testMux(t, &staticCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Health Endpoint Tests
// ==========================

func TestHandler_Health_OK(t *testing.T) {
	mux := testMux(t, &staticCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "ok", status["catalog"])
}

func TestHandler_Health_DegradedCatalog(t *testing.T) {
	mux := testMux(t, &staticCatalog{pingErr: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	// Fallback keeps serving, so the endpoint stays green
	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unavailable", status["catalog"])
}
