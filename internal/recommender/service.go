// internal/recommender/service.go
package recommender

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/common/metrics"
	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender/affinity"
	"github.com/Pjezz/carmatch/internal/recommender/demographic"
	"github.com/Pjezz/carmatch/internal/recommender/explain"
	"github.com/Pjezz/carmatch/internal/recommender/fallback"
	"github.com/Pjezz/carmatch/internal/recommender/prefs"
	"github.com/Pjezz/carmatch/internal/recommender/ranking"
	"github.com/Pjezz/carmatch/internal/recommender/scoring"
	"github.com/Pjezz/carmatch/internal/store"
)

// Result sources.
const (
	SourceCatalog  = "catalog"
	SourceFallback = "fallback"
)

// Result is the outcome of one recommendation request.
type Result struct {
	RequestID       string                  `json:"requestId"`
	ProfileID       string                  `json:"profileId"`
	Source          string                  `json:"source"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// Service runs the recommendation pipeline: normalize, expand, fetch,
// score, explain, rank, diversify. It degrades to the static fallback set
// instead of returning errors to the caller.
type Service struct {
	cfg        config.RecommenderConfig
	catalog    store.CatalogStore
	normalizer *prefs.Normalizer
	affinity   *affinity.Resolver
	engine     *scoring.Engine
	fallback   *fallback.Provider
	logger     logger.Logger
}

func NewService(cfg config.RecommenderConfig, catalog store.CatalogStore, resolver *affinity.Resolver, log logger.Logger) *Service {
	return &Service{
		cfg:        cfg,
		catalog:    catalog,
		normalizer: prefs.NewNormalizer(log),
		affinity:   resolver,
		engine:     scoring.NewEngine(),
		fallback:   fallback.NewProvider(log),
		logger:     log.WithFields(map[string]interface{}{"component": "recommender"}),
	}
}

// Recommend serves one request end to end. It never returns an error to the
// caller: store failures, empty catalogs and even panics inside the
// pipeline all degrade to the fallback set.
func (s *Service) Recommend(ctx context.Context, input *prefs.Input) (result *Result) {
	requestID := uuid.NewString()
	start := time.Now()
	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})

	userPrefs := s.normalizer.Normalize(input)
	limit := s.resolveLimit(userPrefs.Limit)
	profile := demographic.Resolve(userPrefs.Gender, userPrefs.AgeRange)

	defer func() {
		if r := recover(); r != nil {
			panicErr := errors.NewPipelinePanicError(r)
			log.Error("recommendation pipeline panicked", map[string]interface{}{
				"error": panicErr.Error(),
			})
			result = s.fallbackResult(requestID, profile.ID, userPrefs, limit)
		}
		metrics.PipelineDuration.WithLabelValues(result.Source).Observe(time.Since(start).Seconds())
		metrics.RecommendationsServed.WithLabelValues(result.Source).Inc()
	}()

	log.Info("processing recommendation request", map[string]interface{}{
		"profileId":  profile.ID,
		"limit":      limit,
		"conditions": userPrefs.FilterConditionCount(),
	})

	similar := s.similarBrands(ctx, userPrefs, log)

	candidates, err := s.fetchCandidates(ctx, userPrefs, profile, similar, limit)
	if err != nil {
		log.WithError(err).Warn("catalog unavailable, serving fallback", nil)
		return s.fallbackResult(requestID, profile.ID, userPrefs, limit)
	}

	if len(candidates) == 0 {
		candidates = s.fetchRelaxed(ctx, profile, limit, log)
	}
	if len(candidates) == 0 {
		log.Warn("no candidates even after relaxing filters, serving fallback", nil)
		return s.fallbackResult(requestID, profile.ID, userPrefs, limit)
	}

	in := scoring.Inputs{
		Prefs:         userPrefs,
		Profile:       profile,
		SimilarBrands: similar,
	}

	scored := make([]models.ScoredVehicle, 0, len(candidates))
	for _, v := range candidates {
		sv := models.ScoredVehicle{
			Vehicle:   v,
			Score:     s.engine.Score(v, in),
			MatchType: models.MatchRecommended,
		}
		if userPrefs.MatchesFilters(v) {
			sv.MatchType = models.MatchFiltered
		}
		scored = append(scored, sv)
	}

	ranking.Sort(scored)
	selected := ranking.Diversify(scored, limit)

	recommendations := make([]models.Recommendation, 0, len(selected))
	for _, sv := range selected {
		recommendations = append(recommendations, models.NewRecommendation(sv, explain.Reason(sv, in)))
	}

	log.Info("recommendations ready", map[string]interface{}{
		"candidates": len(candidates),
		"returned":   len(recommendations),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &Result{
		RequestID:       requestID,
		ProfileID:       profile.ID,
		Source:          SourceCatalog,
		Recommendations: recommendations,
	}
}

// Ping reports whether the catalog store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.catalog.Ping(ctx)
}

func (s *Service) resolveLimit(requested int) int {
	if requested <= 0 {
		return s.cfg.DefaultLimit
	}
	if requested > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return requested
}

// similarBrands runs the affinity expansion; failures degrade to no
// expansion rather than failing the request.
func (s *Service) similarBrands(ctx context.Context, userPrefs *models.UserPreferences, log logger.Logger) []string {
	if s.affinity == nil || len(userPrefs.Brands) == 0 {
		return nil
	}
	similar, err := s.affinity.SimilarBrands(ctx, userPrefs.Brands)
	if err != nil {
		log.WithError(err).Warn("brand affinity expansion failed", nil)
		return nil
	}
	return similar
}

// fetchCandidates merges the exact-filter pool with the broad relevance
// pool, deduplicating by vehicle id with filtered results first.
func (s *Service) fetchCandidates(ctx context.Context, userPrefs *models.UserPreferences, profile models.DemographicProfile, similar []string, limit int) ([]models.Vehicle, error) {
	var merged []models.Vehicle
	seen := make(map[string]bool)

	if userPrefs.FilterConditionCount() >= s.cfg.MinFilterConditions {
		filtered, err := s.catalog.FetchFiltered(ctx, store.FilterQuery{
			Brands:        userPrefs.Brands,
			Budget:        userPrefs.Budget,
			Fuels:         userPrefs.Fuels,
			Types:         userPrefs.Types,
			Transmissions: userPrefs.Transmissions,
			Limit:         limit,
		})
		if err != nil {
			metrics.StoreQueryErrors.WithLabelValues("catalog", "filtered").Inc()
			return nil, err
		}
		metrics.CandidatesFetched.WithLabelValues("filtered").Observe(float64(len(filtered)))
		for _, v := range filtered {
			if !seen[v.ID] {
				merged = append(merged, v)
				seen[v.ID] = true
			}
		}
	}

	relevant, err := s.catalog.FetchRelevant(ctx, store.RelevanceQuery{
		RelevantBrands:   relevantBrands(userPrefs.Brands, similar, profile.Brands),
		DemographicTypes: profile.Types,
		Budget:           userPrefs.Budget,
		Limit:            limit * s.cfg.CandidateMultiplier,
	})
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("catalog", "relevant").Inc()
		return nil, err
	}
	metrics.CandidatesFetched.WithLabelValues("relevant").Observe(float64(len(relevant)))
	for _, v := range relevant {
		if !seen[v.ID] {
			merged = append(merged, v)
			seen[v.ID] = true
		}
	}

	return merged, nil
}

// fetchRelaxed retries the broad query without brand or budget constraints.
func (s *Service) fetchRelaxed(ctx context.Context, profile models.DemographicProfile, limit int, log logger.Logger) []models.Vehicle {
	relaxed, err := s.catalog.FetchRelevant(ctx, store.RelevanceQuery{
		DemographicTypes: profile.Types,
		Limit:            limit * s.cfg.CandidateMultiplier,
	})
	if err != nil {
		metrics.StoreQueryErrors.WithLabelValues("catalog", "relaxed").Inc()
		log.WithError(err).Warn("relaxed candidate query failed", nil)
		return nil
	}
	log.Info("relaxed filters applied", map[string]interface{}{
		"candidates": len(relaxed),
	})
	return relaxed
}

func (s *Service) fallbackResult(requestID, profileID string, userPrefs *models.UserPreferences, limit int) *Result {
	profile := demographic.ByID(profileID)
	in := scoring.Inputs{
		Prefs:   userPrefs,
		Profile: profile,
	}

	selected := s.fallback.Recommendations(userPrefs, limit)
	recommendations := make([]models.Recommendation, 0, len(selected))
	for _, sv := range selected {
		recommendations = append(recommendations, models.NewRecommendation(sv, explain.Reason(sv, in)))
	}

	return &Result{
		RequestID:       requestID,
		ProfileID:       profileID,
		Source:          SourceFallback,
		Recommendations: recommendations,
	}
}

// relevantBrands concatenates selected, similar and profile brands,
// deduplicating while preserving precedence order.
func relevantBrands(selected, similar, profileBrands []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(selected)+len(similar)+len(profileBrands))
	for _, group := range [][]string{selected, similar, profileBrands} {
		for _, b := range group {
			if !seen[b] {
				out = append(out, b)
				seen[b] = true
			}
		}
	}
	return out
}
