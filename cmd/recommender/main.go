// cmd/recommender/main.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Pjezz/carmatch/internal/api"
	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/database"
	apperrors "github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/common/observability"
	"github.com/Pjezz/carmatch/internal/recommender"
	"github.com/Pjezz/carmatch/internal/recommender/affinity"
	"github.com/Pjezz/carmatch/internal/store"
)

// reconnectInterval separates rounds of catalog connection attempts after
// the initial backoff sequence is exhausted.
const reconnectInterval = 30 * time.Second

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting recommendation service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("recommender")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Catalog Store ---
	// The catalog connects in the background. Until it does, every request
	// is answered from the fallback set and /ready reports degraded.
	catalog := store.NewReconnecting(log)
	defer catalog.Close()
	go attachCatalogStore(ctx, cfg, catalog, zapLog, log)

	// --- Init Redis (optional, affinity cache only) ---
	var affinityCache *goredis.Client
	if cfg.Redis.Address != "" {
		redisClient, err := database.NewRedis(cfg.Redis)
		if err == nil {
			err = redisClient.Ping(ctx)
		}
		if err != nil {
			// the affinity resolver degrades to direct store lookups
			zapLog.Warn("Redis unavailable, affinity cache disabled", zap.Error(err))
		} else {
			affinityCache = redisClient.Client
			defer redisClient.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Wire the recommendation pipeline ---
	resolver := affinity.NewResolver(
		catalog,
		affinityCache,
		cfg.Recommender.SimilarBrandLimit,
		time.Duration(cfg.Recommender.AffinityCacheTTLSeconds)*time.Second,
		log,
	)
	service := recommender.NewService(cfg.Recommender, catalog, resolver, log)

	requestTimeout := 2 * config.GetDuration(cfg.Recommender.QueryTimeoutMillis)
	handler := api.NewHandler(service, obs, requestTimeout, log)
	handler.Register(http.DefaultServeMux)

	// --- Health & Metrics ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "ready"
		code := http.StatusOK
		if !catalog.Ready() {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Recommendation service stopped gracefully")
}

// attachCatalogStore keeps dialing the configured backend until it answers,
// then hands it to the reconnecting store. Requests arriving before that
// are served from the fallback set.
func attachCatalogStore(ctx context.Context, cfg *config.Config, catalog *store.Reconnecting, zapLog *zap.Logger, log logger.Logger) {
	for {
		backend, closeFn, err := buildCatalogStore(ctx, cfg, zapLog, log)
		if err == nil {
			catalog.Attach(backend, closeFn)
			zapLog.Info("Catalog store connected successfully", zap.String("backend", cfg.Store.Backend))
			return
		}

		// Rejected credentials cannot heal on their own, so stop dialing
		var stdErr *apperrors.StandardError
		if stderrors.As(err, &stdErr) && !apperrors.IsRetryable(stdErr) {
			zapLog.Error("catalog store rejected the configured credentials, serving fallback only", zap.Error(err))
			return
		}

		zapLog.Error("catalog store unavailable, serving fallback until it recovers",
			zap.Error(err),
			zap.Duration("nextAttemptIn", reconnectInterval),
		)
		time.Sleep(reconnectInterval)
	}
}

// buildCatalogStore connects the configured backend with retries and returns
// the store together with its cleanup function.
func buildCatalogStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (store.CatalogStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Store.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(pg.DB, log), func() { pg.Close() }, nil

	default:
		var client *database.Neo4jClient
		err := retryWithBackoff(func() error {
			var err error
			client, err = database.NewNeo4j(ctx, cfg.Store.Neo4j, log)
			return err
		}, 10, 2*time.Second, zapLog, "Neo4j connection")
		if err != nil {
			return nil, nil, err
		}
		return store.NewNeo4jStore(client, log), func() { client.Close(ctx) }, nil
	}
}
