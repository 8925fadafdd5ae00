// internal/store/store.go
package store

import (
	"context"

	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/models"
)

// FilterQuery selects vehicles matching the user's explicit preferences.
// Empty slices and a nil budget mean the condition is not applied.
type FilterQuery struct {
	Brands        []string
	Budget        *models.BudgetRange
	Fuels         []string
	Types         []string
	Transmissions []string
	Limit         int
}

// ConditionCount reports how many filter conditions the query carries.
func (q FilterQuery) ConditionCount() int {
	n := 0
	if len(q.Brands) > 0 {
		n++
	}
	if q.Budget != nil {
		n++
	}
	if len(q.Fuels) > 0 {
		n++
	}
	if len(q.Types) > 0 {
		n++
	}
	if len(q.Transmissions) > 0 {
		n++
	}
	return n
}

// RelevanceQuery fetches a broad candidate pool. A vehicle qualifies when its
// brand is in the expanded relevant set, or its type matches the demographic
// profile, or its price sits within the stretched budget window.
type RelevanceQuery struct {
	RelevantBrands   []string
	DemographicTypes []string
	Budget           *models.BudgetRange
	Limit            int
}

// BrandAffinity is one similar-brand row of the affinity expansion,
// aggregated over the similarity edges reaching that brand.
type BrandAffinity struct {
	Brand      string
	MeanWeight float64
	EdgeCount  int64
}

// CatalogStore is the read interface over the vehicle catalog.
type CatalogStore interface {
	// FetchFiltered returns vehicles matching every condition of the query.
	FetchFiltered(ctx context.Context, q FilterQuery) ([]models.Vehicle, error)

	// FetchRelevant returns the broad candidate pool for scoring.
	FetchRelevant(ctx context.Context, q RelevanceQuery) ([]models.Vehicle, error)

	// BrandSimilarities returns brands similar to the selected ones, ranked
	// by mean edge weight then edge count. Selected brands are excluded.
	BrandSimilarities(ctx context.Context, selected []string, limit int) ([]BrandAffinity, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// queryError classifies a failed catalog query. A query killed by the
// request deadline is a timeout, anything else an execution failure.
func queryError(ctx context.Context, queryKind string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewQueryTimeoutError(queryKind)
	}
	return errors.NewQueryExecutionFailedError(queryKind, err)
}
