// internal/recommender/affinity/resolver.go
package affinity

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/common/metrics"
	"github.com/Pjezz/carmatch/internal/store"
)

// Resolver expands the user's selected brands with similar ones via the
// catalog's similarity edges. Lookups are cached in Redis keyed by the
// selected brand set; a nil client disables caching.
type Resolver struct {
	store    store.CatalogStore
	redis    *redis.Client
	logger   logger.Logger
	limit    int
	cacheTTL time.Duration
}

func NewResolver(catalog store.CatalogStore, rdb *redis.Client, limit int, cacheTTL time.Duration, log logger.Logger) *Resolver {
	return &Resolver{
		store:    catalog,
		redis:    rdb,
		logger:   log.WithFields(map[string]interface{}{"component": "affinity"}),
		limit:    limit,
		cacheTTL: cacheTTL,
	}
}

// SimilarBrands returns brands similar to the selected ones, most similar
// first. Selected brands never appear in the result, and an empty selection
// yields an empty expansion.
func (r *Resolver) SimilarBrands(ctx context.Context, selected []string) ([]string, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	cacheKey := "affinity:brands:" + strings.Join(selected, ",")
	if cached, ok := r.fromCache(ctx, cacheKey); ok {
		metrics.AffinityCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.AffinityCacheHits.WithLabelValues("miss").Inc()

	affinities, err := r.store.BrandSimilarities(ctx, selected, r.limit)
	if err != nil {
		return nil, err
	}

	brands := make([]string, 0, len(affinities))
	for _, a := range affinities {
		brands = append(brands, a.Brand)
	}

	r.toCache(ctx, cacheKey, brands)

	r.logger.Debug("similar brands resolved", map[string]interface{}{
		"selected": selected,
		"similar":  brands,
	})

	return brands, nil
}

func (r *Resolver) fromCache(ctx context.Context, key string) ([]string, bool) {
	if r.redis == nil {
		return nil, false
	}
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.WithError(errors.NewCacheUnavailableError(err)).Warn("affinity cache read failed", map[string]interface{}{
				"key": key,
			})
		}
		return nil, false
	}
	var brands []string
	if err := json.Unmarshal([]byte(val), &brands); err != nil {
		return nil, false
	}
	return brands, true
}

func (r *Resolver) toCache(ctx context.Context, key string, brands []string) {
	if r.redis == nil {
		return
	}
	data, _ := json.Marshal(brands)
	if err := r.redis.Set(ctx, key, data, r.cacheTTL).Err(); err != nil {
		r.logger.WithError(errors.NewCacheUnavailableError(err)).Warn("failed to cache brand affinities", map[string]interface{}{
			"key": key,
		})
	}
}
