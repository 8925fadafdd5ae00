// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"

	"github.com/lib/pq"
)

// PostgresStore reads the vehicle catalog from a relational mirror of the
// graph: a vehicles table plus a brand_similarities edge table.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewPostgresStore creates a PostgreSQL-backed catalog store.
func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log,
	}
}

const vehicleColumns = `id, brand, model, year, price, type, fuel, transmission, features, segment, trim_level`

// FetchFiltered matches vehicles against every explicit filter condition.
func (s *PostgresStore) FetchFiltered(ctx context.Context, q FilterQuery) ([]models.Vehicle, error) {
	conditions := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(q.Brands) > 0 {
		conditions = append(conditions, "brand = ANY("+arg(pq.Array(q.Brands))+")")
	}
	if q.Budget != nil {
		conditions = append(conditions, "price >= "+arg(q.Budget.Min)+" AND price <= "+arg(q.Budget.Max))
	}
	if len(q.Fuels) > 0 {
		conditions = append(conditions, "fuel = ANY("+arg(pq.Array(q.Fuels))+")")
	}
	if len(q.Types) > 0 {
		conditions = append(conditions, "type = ANY("+arg(pq.Array(q.Types))+")")
	}
	if len(q.Transmissions) > 0 {
		conditions = append(conditions, "transmission = ANY("+arg(pq.Array(q.Transmissions))+")")
	}

	query := "SELECT " + vehicleColumns + " FROM vehicles"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY price ASC LIMIT " + arg(q.Limit)

	vehicles, err := s.queryVehicles(ctx, query, args...)
	if err != nil {
		return nil, queryError(ctx, "filtered", err)
	}
	return vehicles, nil
}

// FetchRelevant fetches the broad candidate pool. The budget ceiling is
// stretched by 30% to leave room for the over-budget penalty.
func (s *PostgresStore) FetchRelevant(ctx context.Context, q RelevanceQuery) ([]models.Vehicle, error) {
	var minPrice, maxPrice interface{}
	if q.Budget != nil {
		minPrice = q.Budget.Min
		maxPrice = q.Budget.Max
	}

	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE brand = ANY($1)
		   OR type = ANY($2)
		   OR (($3::numeric IS NULL OR price >= $3)
		   AND ($4::numeric IS NULL OR price <= $4 * 1.3))
		ORDER BY price ASC
		LIMIT $5`

	vehicles, err := s.queryVehicles(ctx, query,
		pq.Array(q.RelevantBrands),
		pq.Array(q.DemographicTypes),
		minPrice,
		maxPrice,
		q.Limit,
	)
	if err != nil {
		return nil, queryError(ctx, "relevant", err)
	}
	return vehicles, nil
}

// BrandSimilarities aggregates the similarity edges leaving the selected brands.
func (s *PostgresStore) BrandSimilarities(ctx context.Context, selected []string, limit int) ([]BrandAffinity, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	query := `
		SELECT similar_brand, AVG(weight) AS mean_weight, COUNT(*) AS edge_count
		FROM brand_similarities
		WHERE brand = ANY($1) AND NOT similar_brand = ANY($1)
		GROUP BY similar_brand
		ORDER BY mean_weight DESC, edge_count DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(selected), limit)
	if err != nil {
		return nil, queryError(ctx, "brand_similarities", err)
	}
	defer rows.Close()

	var affinities []BrandAffinity
	for rows.Next() {
		var a BrandAffinity
		if err := rows.Scan(&a.Brand, &a.MeanWeight, &a.EdgeCount); err != nil {
			return nil, queryError(ctx, "brand_similarities", err)
		}
		affinities = append(affinities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "brand_similarities", err)
	}

	return affinities, nil
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) queryVehicles(ctx context.Context, query string, args ...interface{}) ([]models.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		var features pq.StringArray
		var segment, trimLevel sql.NullString
		err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.Year, &v.Price,
			&v.Type, &v.Fuel, &v.Transmission,
			&features, &segment, &trimLevel,
		)
		if err != nil {
			return nil, err
		}
		v.Features = []string(features)
		v.Segment = segment.String
		v.TrimLevel = trimLevel.String
		v.Normalize()
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("fetched vehicles from postgres", map[string]interface{}{
		"count": len(vehicles),
	})

	return vehicles, nil
}
