package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"smartcity-explorer/backend/pkg/logger"
)

// CityNode is the attribute copy written onto each City node at seed time
type CityNode struct {
	CityID       int
	Name         string
	Department   string
	Region       string
	Population   int
	OverallScore float64
}

// StrongIn is a City→Criterion edge to create
type StrongIn struct {
	CityID    int
	Criterion string
}

// SimilarityEdge is a directed City→City edge with its derived weight
type SimilarityEdge struct {
	SourceID int
	TargetID int
	Score    float64
}

// Loader performs the seed-time graph writes. The request path never touches
// these operations.
type Loader struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewLoader creates a graph loader
func NewLoader(driver neo4j.DriverWithContext) *Loader {
	return &Loader{
		driver: driver,
		logger: logger.Get(),
	}
}

// Reset wipes the entire graph. Every load starts from a clean slate so that
// rerunning the seed is a full replace, not an accumulation.
func (l *Loader) Reset(ctx context.Context) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("failed to reset graph: %w", err)
	}
	return nil
}

// CreateConstraints ensures uniqueness constraints exist for City and
// Criterion nodes. Failures are reported but non-fatal to the caller since
// the constraints may already exist.
func (l *Loader) CreateConstraints(ctx context.Context) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT city_id_unique IF NOT EXISTS FOR (c:City) REQUIRE c.city_id IS UNIQUE",
		"CREATE CONSTRAINT criterion_name_unique IF NOT EXISTS FOR (cr:Criterion) REQUIRE cr.name IS UNIQUE",
	}
	for _, stmt := range constraints {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	return nil
}

// MergeCriteria creates one Criterion node per distinct name
func (l *Loader) MergeCriteria(ctx context.Context, names []string) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		UNWIND $names AS name
		MERGE (c:Criterion {name: name})
	`
	if _, err := session.Run(ctx, query, map[string]interface{}{"names": names}); err != nil {
		return fmt.Errorf("failed to merge criteria: %w", err)
	}

	l.logger.Info("Criterion nodes merged", zap.Int("count", len(names)))
	return nil
}

// MergeCity writes one City node with its attribute copy
func (l *Loader) MergeCity(ctx context.Context, city CityNode) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (c:City {city_id: $cityID})
		SET c.name = $name,
		    c.department = $department,
		    c.region = $region,
		    c.population = $population,
		    c.overall_score = $overallScore
	`
	_, err := session.Run(ctx, query, map[string]interface{}{
		"cityID":       city.CityID,
		"name":         city.Name,
		"department":   city.Department,
		"region":       city.Region,
		"population":   city.Population,
		"overallScore": city.OverallScore,
	})
	if err != nil {
		return fmt.Errorf("failed to merge city %d: %w", city.CityID, err)
	}
	return nil
}

// CreateStrongIn links a city to a criterion it is strong in. The caller has
// already applied the score threshold.
func (l *Loader) CreateStrongIn(ctx context.Context, edge StrongIn) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (city:City {city_id: $cityID})
		MATCH (cr:Criterion {name: $criterion})
		MERGE (city)-[:STRONG_IN]->(cr)
	`
	_, err := session.Run(ctx, query, map[string]interface{}{
		"cityID":    edge.CityID,
		"criterion": edge.Criterion,
	})
	if err != nil {
		return fmt.Errorf("failed to create STRONG_IN for city %d: %w", edge.CityID, err)
	}
	return nil
}

// CreateSimilarEdges writes the precomputed SIMILAR_TO edges in one batch
func (l *Loader) CreateSimilarEdges(ctx context.Context, edges []SimilarityEdge) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	params := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		params = append(params, map[string]interface{}{
			"source": e.SourceID,
			"target": e.TargetID,
			"score":  e.Score,
		})
	}

	query := `
		UNWIND $edges AS edge
		MATCH (a:City {city_id: edge.source})
		MATCH (b:City {city_id: edge.target})
		CREATE (a)-[:SIMILAR_TO {score: edge.score}]->(b)
	`
	if _, err := session.Run(ctx, query, map[string]interface{}{"edges": params}); err != nil {
		return fmt.Errorf("failed to create SIMILAR_TO edges: %w", err)
	}

	l.logger.Info("Similarity edges created", zap.Int("count", len(edges)))
	return nil
}
