// internal/seed/neo4j.go
package seed

import (
	"context"

	"github.com/Pjezz/carmatch/internal/common/database"
	"github.com/Pjezz/carmatch/internal/common/errors"
	"github.com/Pjezz/carmatch/internal/common/logger"
	"github.com/Pjezz/carmatch/internal/models"
	"github.com/Pjezz/carmatch/internal/recommender/demographic"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Edge weights for demographic recommendation relationships.
const (
	brandEdgeWeight = 0.8
	typeEdgeWeight  = 0.7
)

// Neo4jSeeder rebuilds the recommendation graph from the static catalog.
type Neo4jSeeder struct {
	client *database.Neo4jClient
	logger logger.Logger
}

// NewNeo4jSeeder creates a seeder bound to a graph connection.
func NewNeo4jSeeder(client *database.Neo4jClient, log logger.Logger) *Neo4jSeeder {
	return &Neo4jSeeder{client: client, logger: log}
}

// Run wipes the graph and recreates schema nodes, similarity edges,
// demographic edges and the full vehicle catalog.
func (s *Neo4jSeeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"clear", s.clear},
		{"schema", s.createSchema},
		{"brand_similarities", s.createBrandSimilarities},
		{"demographic_edges", s.createDemographicEdges},
		{"vehicles", s.createVehicles},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return errors.NewQueryExecutionFailedError("seed_"+step.name, err)
		}
		s.logger.Info("seed step completed", map[string]interface{}{
			"step": step.name,
		})
	}

	return nil
}

func (s *Neo4jSeeder) clear(ctx context.Context) error {
	return s.write(ctx, func(tx neo4j.ManagedTransaction) error {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return err
	})
}

func (s *Neo4jSeeder) createSchema(ctx context.Context) error {
	return s.write(ctx, func(tx neo4j.ManagedTransaction) error {
		for _, b := range Brands {
			_, err := tx.Run(ctx, `
				CREATE (m:Marca {
					nombre: $nombre,
					origen: $origen,
					caracteristicas: $caracteristicas,
					price_range: $price_range,
					reliability: $reliability
				})`, map[string]any{
				"nombre":          b.Name,
				"origen":          b.Origin,
				"caracteristicas": toAnySlice(b.Traits),
				"price_range":     b.PriceTier,
				"reliability":     int64(b.Reliability),
			})
			if err != nil {
				return err
			}
		}

		for _, p := range demographic.All() {
			_, err := tx.Run(ctx, `
				CREATE (p:PerfilDemografico {
					id: $id,
					marcas_recomendadas: $marcas,
					tipos_vehiculo: $tipos,
					caracteristicas_clave: $caracteristicas
				})`, map[string]any{
				"id":              p.ID,
				"marcas":          toAnySlice(p.Brands),
				"tipos":           toAnySlice(p.Types),
				"caracteristicas": toAnySlice(p.FeatureKeywords),
			})
			if err != nil {
				return err
			}
		}

		for _, t := range VehicleTypes {
			_, err := tx.Run(ctx, `
				CREATE (t:Tipo {
					categoria: $categoria,
					target_demographic: $target_demographic,
					uso_principal: $uso_principal,
					capacidad: $capacidad
				})`, map[string]any{
				"categoria":          t.Category,
				"target_demographic": toAnySlice(t.TargetDemographic),
				"uso_principal":      t.PrimaryUse,
				"capacidad":          int64(t.Capacity),
			})
			if err != nil {
				return err
			}
		}

		for _, fuel := range Fuels {
			if _, err := tx.Run(ctx, "CREATE (c:Combustible {tipo: $tipo})", map[string]any{"tipo": fuel}); err != nil {
				return err
			}
		}

		for _, tr := range Transmissions {
			if _, err := tx.Run(ctx, "CREATE (tr:Transmision {tipo: $tipo})", map[string]any{"tipo": tr}); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Neo4jSeeder) createBrandSimilarities(ctx context.Context) error {
	return s.write(ctx, func(tx neo4j.ManagedTransaction) error {
		for _, b := range Brands {
			for _, similar := range SimilarBrands[b.Name] {
				_, err := tx.Run(ctx, `
					MATCH (m1:Marca {nombre: $brand1})
					MATCH (m2:Marca {nombre: $brand2})
					CREATE (m1)-[:SIMILAR_A {peso: $weight}]->(m2)`, map[string]any{
					"brand1": b.Name,
					"brand2": similar,
					"weight": SimilarityWeight(b.Name, similar),
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Neo4jSeeder) createDemographicEdges(ctx context.Context) error {
	return s.write(ctx, func(tx neo4j.ManagedTransaction) error {
		for _, p := range demographic.All() {
			for _, brand := range p.Brands {
				_, err := tx.Run(ctx, `
					MATCH (p:PerfilDemografico {id: $id})
					MATCH (m:Marca {nombre: $brand})
					MERGE (p)-[:RECOMIENDA_MARCA {peso: $weight}]->(m)`, map[string]any{
					"id":     p.ID,
					"brand":  brand,
					"weight": brandEdgeWeight,
				})
				if err != nil {
					return err
				}
			}

			for _, vtype := range p.Types {
				_, err := tx.Run(ctx, `
					MATCH (p:PerfilDemografico {id: $id})
					MATCH (t:Tipo {categoria: $tipo})
					MERGE (p)-[:RECOMIENDA_TIPO {peso: $weight}]->(t)`, map[string]any{
					"id":     p.ID,
					"tipo":   vtype,
					"weight": typeEdgeWeight,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Neo4jSeeder) createVehicles(ctx context.Context) error {
	catalog := Catalog()

	err := s.write(ctx, func(tx neo4j.ManagedTransaction) error {
		for _, v := range catalog {
			if err := s.createVehicle(ctx, tx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("vehicle catalog created", map[string]interface{}{
		"count": len(catalog),
	})
	return nil
}

func (s *Neo4jSeeder) createVehicle(ctx context.Context, tx neo4j.ManagedTransaction, v models.Vehicle) error {
	_, err := tx.Run(ctx, `
		CREATE (a:Auto {
			id: $id,
			modelo: $modelo,
			año: $año,
			precio: $precio,
			caracteristicas: $caracteristicas,
			segmento: $segmento,
			trim_level: $trim_level
		})`, map[string]any{
		"id":              v.ID,
		"modelo":          v.Model,
		"año":             int64(v.Year),
		"precio":          v.Price,
		"caracteristicas": toAnySlice(v.Features),
		"segmento":        v.Segment,
		"trim_level":      v.TrimLevel,
	})
	if err != nil {
		return err
	}

	relations := []struct {
		query string
		param string
		value string
	}{
		{`MATCH (a:Auto {id: $id}) MATCH (m:Marca {nombre: $value}) MERGE (a)-[:ES_MARCA]->(m)`, "marca", v.Brand},
		{`MATCH (a:Auto {id: $id}) MATCH (t:Tipo {categoria: $value}) MERGE (a)-[:ES_TIPO]->(t)`, "tipo", v.Type},
		{`MATCH (a:Auto {id: $id}) MATCH (c:Combustible {tipo: $value}) MERGE (a)-[:USA_COMBUSTIBLE]->(c)`, "combustible", v.Fuel},
		{`MATCH (a:Auto {id: $id}) MATCH (tr:Transmision {tipo: $value}) MERGE (a)-[:TIENE_TRANSMISION]->(tr)`, "transmision", v.Transmission},
	}

	for _, rel := range relations {
		if _, err := tx.Run(ctx, rel.query, map[string]any{"id": v.ID, "value": rel.value}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Neo4jSeeder) write(ctx context.Context, fn func(neo4j.ManagedTransaction) error) error {
	session := s.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(tx)
	})
	return err
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
