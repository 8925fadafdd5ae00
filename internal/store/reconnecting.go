// internal/store/reconnecting.go
package store

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
)

var errNotAttached = stderrors.New("catalog backend not attached")

// Reconnecting is a CatalogStore whose backing connection may arrive after
// startup. Until a backend is attached every query fails with a store
// unavailable error, which the recommendation service degrades to the
// fallback set, so requests are served from the first second of the
// process's life even when the catalog is down.
type Reconnecting struct {
	mu      sync.RWMutex
	backend CatalogStore
	closeFn func()
	logger  logger.Logger
}

// NewReconnecting creates a store with no backend attached yet.
func NewReconnecting(log logger.Logger) *Reconnecting {
	return &Reconnecting{logger: log}
}

// Attach hands the connected backend to the store. closeFn releases the
// backend's connection and is invoked by Close.
func (r *Reconnecting) Attach(backend CatalogStore, closeFn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend = backend
	r.closeFn = closeFn
	r.logger.Info("catalog backend attached", nil)
}

// Ready reports whether a backend is attached.
func (r *Reconnecting) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backend != nil
}

// Close releases the attached backend, if any.
func (r *Reconnecting) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closeFn != nil {
		r.closeFn()
	}
	r.backend = nil
	r.closeFn = nil
}

func (r *Reconnecting) get() (CatalogStore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.backend == nil {
		return nil, errors.NewStoreUnavailableError(errNotAttached)
	}
	return r.backend, nil
}

func (r *Reconnecting) FetchFiltered(ctx context.Context, q FilterQuery) ([]models.Vehicle, error) {
	backend, err := r.get()
	if err != nil {
		return nil, err
	}
	return backend.FetchFiltered(ctx, q)
}

func (r *Reconnecting) FetchRelevant(ctx context.Context, q RelevanceQuery) ([]models.Vehicle, error) {
	backend, err := r.get()
	if err != nil {
		return nil, err
	}
	return backend.FetchRelevant(ctx, q)
}

func (r *Reconnecting) BrandSimilarities(ctx context.Context, selected []string, limit int) ([]BrandAffinity, error) {
	backend, err := r.get()
	if err != nil {
		return nil, err
	}
	return backend.BrandSimilarities(ctx, selected, limit)
}

func (r *Reconnecting) Ping(ctx context.Context) error {
	backend, err := r.get()
	if err != nil {
		return err
	}
	return backend.Ping(ctx)
}
