// cmd/tools/catalog-seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Pjezz/carmatch/internal/common/config"
	"github.com/Pjezz/carmatch/internal/common/database"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/seed"
)

func main() {
	backend := flag.String("backend", "", "store backend to seed (neo4j or postgres); defaults to the configured one")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall seeding timeout")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	target := cfg.Store.Backend
	if *backend != "" {
		target = *backend
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	zapLog.Info("Seeding catalog", zap.String("backend", target))

	switch target {
	case "neo4j":
		err = seedNeo4j(ctx, cfg, log)
	case "postgres":
		err = seedPostgres(ctx, cfg, log)
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q, expected neo4j or postgres\n", target)
		os.Exit(1)
	}

	if err != nil {
		zapLog.Fatal("seeding failed", zap.Error(err))
	}

	zapLog.Info("Catalog seeded successfully", zap.String("backend", target))
}

func seedNeo4j(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	client, err := database.NewNeo4j(ctx, cfg.Store.Neo4j, log)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	return seed.NewNeo4jSeeder(client, log).Run(ctx)
}

func seedPostgres(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	client, err := database.NewPostgres(cfg.Store.Postgres)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return err
	}

	return seed.NewPostgresSeeder(client, log).Run(ctx)
}
