// internal/store/neo4j.go
package store

import (
	"context"
	"strings"

	"github.com/Pjezz/carmatch/internal/common/database"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore reads the vehicle catalog from the graph database.
type Neo4jStore struct {
	client *database.Neo4jClient
	logger logger.Logger
}

// NewNeo4jStore creates a Neo4j-backed catalog store.
func NewNeo4jStore(client *database.Neo4jClient, log logger.Logger) *Neo4jStore {
	return &Neo4jStore{
		client: client,
		logger: log,
	}
}

// FetchFiltered matches vehicles against every explicit filter condition.
func (s *Neo4jStore) FetchFiltered(ctx context.Context, q FilterQuery) ([]models.Vehicle, error) {
	conditions := []string{}
	params := map[string]any{
		"limit": int64(q.Limit),
	}

	if len(q.Brands) > 0 {
		conditions = append(conditions, "m.nombre IN $brands")
		params["brands"] = toAnySlice(q.Brands)
	}
	if q.Budget != nil {
		conditions = append(conditions, "a.precio >= $min_price AND a.precio <= $max_price")
		params["min_price"] = q.Budget.Min
		params["max_price"] = q.Budget.Max
	}
	if len(q.Fuels) > 0 {
		conditions = append(conditions, "c.tipo IN $fuels")
		params["fuels"] = toAnySlice(q.Fuels)
	}
	if len(q.Types) > 0 {
		conditions = append(conditions, "t.categoria IN $types")
		params["types"] = toAnySlice(q.Types)
	}
	if len(q.Transmissions) > 0 {
		conditions = append(conditions, "tr.tipo IN $transmissions")
		params["transmissions"] = toAnySlice(q.Transmissions)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		MATCH (a:Auto)-[:ES_MARCA]->(m:Marca)
		MATCH (a)-[:ES_TIPO]->(t:Tipo)
		MATCH (a)-[:USA_COMBUSTIBLE]->(c:Combustible)
		MATCH (a)-[:TIENE_TRANSMISION]->(tr:Transmision)
		` + whereClause + `
		RETURN a.id as id, a.modelo as modelo, a.año as año,
		       a.precio as precio, a.caracteristicas as caracteristicas,
		       a.segmento as segmento, a.trim_level as trim_level,
		       m.nombre as marca, t.categoria as tipo,
		       c.tipo as combustible, tr.tipo as transmision
		ORDER BY a.precio ASC
		LIMIT $limit`

	vehicles, err := s.readVehicles(ctx, query, params)
	if err != nil {
		return nil, queryError(ctx, "filtered", err)
	}
	return vehicles, nil
}

// FetchRelevant fetches the broad candidate pool. The relationship matches
// are optional so vehicles with incomplete edges still qualify, and the
// budget ceiling is stretched by 30% to leave room for the over-budget
// penalty instead of a hard cutoff.
func (s *Neo4jStore) FetchRelevant(ctx context.Context, q RelevanceQuery) ([]models.Vehicle, error) {
	params := map[string]any{
		"relevant_brands":   toAnySlice(q.RelevantBrands),
		"demographic_types": toAnySlice(q.DemographicTypes),
		"min_price":         nil,
		"max_price":         nil,
		"limit":             int64(q.Limit),
	}
	if q.Budget != nil {
		params["min_price"] = q.Budget.Min
		params["max_price"] = q.Budget.Max
	}

	query := `
		MATCH (a:Auto)
		OPTIONAL MATCH (a)-[:ES_MARCA]->(m:Marca)
		OPTIONAL MATCH (a)-[:ES_TIPO]->(t:Tipo)
		OPTIONAL MATCH (a)-[:USA_COMBUSTIBLE]->(c:Combustible)
		OPTIONAL MATCH (a)-[:TIENE_TRANSMISION]->(tr:Transmision)
		WHERE (
		    m.nombre IN $relevant_brands
		    OR
		    t.categoria IN $demographic_types
		    OR
		    ($min_price IS NULL OR a.precio >= $min_price) AND
		    ($max_price IS NULL OR a.precio <= $max_price * 1.3)
		)
		RETURN a.id as id, a.modelo as modelo, a.año as año,
		       a.precio as precio, a.caracteristicas as caracteristicas,
		       a.segmento as segmento, a.trim_level as trim_level,
		       m.nombre as marca, t.categoria as tipo,
		       c.tipo as combustible, tr.tipo as transmision
		ORDER BY a.precio ASC
		LIMIT $limit`

	vehicles, err := s.readVehicles(ctx, query, params)
	if err != nil {
		return nil, queryError(ctx, "relevant", err)
	}
	return vehicles, nil
}

// BrandSimilarities aggregates the similarity edges leaving the selected brands.
func (s *Neo4jStore) BrandSimilarities(ctx context.Context, selected []string, limit int) ([]BrandAffinity, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	query := `
		MATCH (m1:Marca)-[r:SIMILAR_A]->(m2:Marca)
		WHERE m1.nombre IN $brands AND NOT m2.nombre IN $brands
		RETURN m2.nombre as marca_similar,
		       avg(r.peso) as peso_promedio,
		       count(*) as frecuencia
		ORDER BY peso_promedio DESC, frecuencia DESC
		LIMIT $limit`

	session := s.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"brands": toAnySlice(selected),
			"limit":  int64(limit),
		})
		if err != nil {
			return nil, err
		}

		var affinities []BrandAffinity
		for res.Next(ctx) {
			record := res.Record()
			affinities = append(affinities, BrandAffinity{
				Brand:      recordString(record, "marca_similar"),
				MeanWeight: recordFloat(record, "peso_promedio"),
				EdgeCount:  recordInt(record, "frecuencia"),
			})
		}
		return affinities, res.Err()
	})
	if err != nil {
		return nil, queryError(ctx, "brand_similarities", err)
	}

	return result.([]BrandAffinity), nil
}

// Ping verifies graph connectivity.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Neo4jStore) readVehicles(ctx context.Context, query string, params map[string]any) ([]models.Vehicle, error) {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var vehicles []models.Vehicle
		for res.Next(ctx) {
			v := vehicleFromRecord(res.Record())
			v.Normalize()
			vehicles = append(vehicles, v)
		}
		return vehicles, res.Err()
	})
	if err != nil {
		return nil, err
	}

	vehicles := result.([]models.Vehicle)
	s.logger.Debug("fetched vehicles from graph", map[string]interface{}{
		"count": len(vehicles),
	})

	return vehicles, nil
}

func vehicleFromRecord(record *neo4j.Record) models.Vehicle {
	return models.Vehicle{
		ID:           recordString(record, "id"),
		Brand:        recordString(record, "marca"),
		Model:        recordString(record, "modelo"),
		Year:         int(recordInt(record, "año")),
		Price:        recordFloat(record, "precio"),
		Type:         recordString(record, "tipo"),
		Fuel:         recordString(record, "combustible"),
		Transmission: recordString(record, "transmision"),
		Features:     recordStrings(record, "caracteristicas"),
		Segment:      recordString(record, "segmento"),
		TrimLevel:    recordString(record, "trim_level"),
	}
}

func recordString(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	s, _ := val.(string)
	return s
}

func recordInt(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch n := val.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func recordFloat(record *neo4j.Record, key string) float64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch n := val.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func recordStrings(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	items, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
