// internal/seed/postgres.go
package seed

import (
	"context"

	"github.com/Pjezz/carmatch/internal/common/database"
	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"

	"github.com/lib/pq"
)

const createVehiclesTable = `
	CREATE TABLE IF NOT EXISTS vehicles (
		id            TEXT PRIMARY KEY,
		brand         TEXT NOT NULL,
		model         TEXT NOT NULL,
		year          INTEGER NOT NULL,
		price         NUMERIC NOT NULL,
		type          TEXT NOT NULL,
		fuel          TEXT NOT NULL,
		transmission  TEXT NOT NULL,
		features      TEXT[] NOT NULL DEFAULT '{}',
		segment       TEXT,
		trim_level    TEXT
	)`

const createSimilaritiesTable = `
	CREATE TABLE IF NOT EXISTS brand_similarities (
		brand         TEXT NOT NULL,
		similar_brand TEXT NOT NULL,
		weight        DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (brand, similar_brand)
	)`

// PostgresSeeder rebuilds the relational mirror of the catalog.
type PostgresSeeder struct {
	client *database.PostgresClient
	logger logger.Logger
}

// NewPostgresSeeder creates a seeder bound to a SQL connection.
func NewPostgresSeeder(client *database.PostgresClient, log logger.Logger) *PostgresSeeder {
	return &PostgresSeeder{client: client, logger: log}
}

// Run creates the tables if missing, truncates them and loads the static
// catalog and similarity weights.
func (s *PostgresSeeder) Run(ctx context.Context) error {
	if err := s.createTables(ctx); err != nil {
		return errors.NewQueryExecutionFailedError("seed_schema", err)
	}
	if err := s.loadVehicles(ctx); err != nil {
		return errors.NewQueryExecutionFailedError("seed_vehicles", err)
	}
	if err := s.loadSimilarities(ctx); err != nil {
		return errors.NewQueryExecutionFailedError("seed_brand_similarities", err)
	}
	return nil
}

func (s *PostgresSeeder) createTables(ctx context.Context) error {
	for _, stmt := range []string{createVehiclesTable, createSimilaritiesTable} {
		if _, err := s.client.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresSeeder) loadVehicles(ctx context.Context) error {
	if _, err := s.client.Exec(ctx, "TRUNCATE TABLE vehicles"); err != nil {
		return err
	}

	catalog := Catalog()
	for _, v := range catalog {
		_, err := s.client.Exec(ctx, `
			INSERT INTO vehicles
				(id, brand, model, year, price, type, fuel, transmission, features, segment, trim_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			v.ID, v.Brand, v.Model, v.Year, v.Price, v.Type, v.Fuel,
			v.Transmission, pq.Array(v.Features), v.Segment, v.TrimLevel,
		)
		if err != nil {
			return err
		}
	}

	s.logger.Info("vehicle catalog loaded", map[string]interface{}{
		"count": len(catalog),
	})
	return nil
}

func (s *PostgresSeeder) loadSimilarities(ctx context.Context) error {
	if _, err := s.client.Exec(ctx, "TRUNCATE TABLE brand_similarities"); err != nil {
		return err
	}

	edges := 0
	for _, b := range Brands {
		for _, similar := range SimilarBrands[b.Name] {
			_, err := s.client.Exec(ctx, `
				INSERT INTO brand_similarities (brand, similar_brand, weight)
				VALUES ($1, $2, $3)`,
				b.Name, similar, SimilarityWeight(b.Name, similar),
			)
			if err != nil {
				return err
			}
			edges++
		}
	}

	s.logger.Info("brand similarities loaded", map[string]interface{}{
		"edges": edges,
	})
	return nil
}
