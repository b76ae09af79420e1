// Package graph handles all Neo4j operations: the read-only similarity
// traversals used at request time, and the loader used by the one-shot
// seeding batch.
package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"smartcity-explorer/backend/pkg/apperrors"
	"smartcity-explorer/backend/pkg/logger"
)

// SimilarCity is one traversal result: the graph's copy of the target city's
// attributes plus the edge weight and the live-recomputed shared criteria.
// The attribute copy may be stale; callers treat it as a cache.
type SimilarCity struct {
	CityID          int
	Name            string
	Department      string
	Region          string
	Population      int
	OverallScore    float64
	SimilarityScore float64
	CommonStrengths []string
}

// Repository handles Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// GetSimilarCities traverses outgoing SIMILAR_TO edges from the given city
// and returns up to k targets ordered by similarity score descending. The
// shared STRONG_IN criteria are recomputed at query time rather than read
// from whatever produced the stored edge weight. A missing start node yields
// an empty result, indistinguishable from a city with no similar cities.
func (r *Repository) GetSimilarCities(ctx context.Context, cityID, k int) ([]SimilarCity, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (source:City {city_id: $cityID})-[r:SIMILAR_TO]->(target:City)
		OPTIONAL MATCH (source)-[:STRONG_IN]->(c:Criterion)<-[:STRONG_IN]-(target)
		WITH target, r.score AS similarity_score,
		     collect(DISTINCT c.name) AS common_strengths
		RETURN target.city_id AS city_id,
		       target.name AS name,
		       target.department AS department,
		       target.region AS region,
		       target.population AS population,
		       target.overall_score AS overall_score,
		       similarity_score,
		       common_strengths
		ORDER BY similarity_score DESC
		LIMIT $k
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"cityID": cityID,
		"k":      k,
	})
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeGraph, "query similar cities", err)
	}

	similar := make([]SimilarCity, 0, k)
	for result.Next(ctx) {
		record := result.Record()
		similar = append(similar, SimilarCity{
			CityID:          getIntFromRecord(record, "city_id"),
			Name:            getStringFromRecord(record, "name"),
			Department:      getStringFromRecord(record, "department"),
			Region:          getStringFromRecord(record, "region"),
			Population:      getIntFromRecord(record, "population"),
			OverallScore:    getFloat64FromRecord(record, "overall_score"),
			SimilarityScore: getFloat64FromRecord(record, "similarity_score"),
			CommonStrengths: getStringSliceFromRecord(record, "common_strengths"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeGraph, "iterate similar cities", err)
	}

	return similar, nil
}

// GetCityStrengths returns the names of all criteria the city is strong in.
// An empty slice means the node has no STRONG_IN edges or does not exist.
func (r *Repository) GetCityStrengths(ctx context.Context, cityID int) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (c:City {city_id: $cityID})-[:STRONG_IN]->(cr:Criterion)
		RETURN cr.name AS name
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"cityID": cityID,
	})
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeGraph, "query city strengths", err)
	}

	strengths := make([]string, 0)
	for result.Next(ctx) {
		strengths = append(strengths, getStringFromRecord(result.Record(), "name"))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeGraph, "iterate city strengths", err)
	}

	return strengths, nil
}
