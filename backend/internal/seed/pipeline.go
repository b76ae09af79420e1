package seed

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/graph"
	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/store"
	"smartcity-explorer/backend/pkg/logger"
)

// Paths locates the three dataset files
type Paths struct {
	Cities  string
	Scores  string
	Reviews string
}

// Pipeline loads the datasets into the three stores. Each per-store loader
// clears its target before loading, so rerunning the pipeline is a full
// replace and leaves counts unchanged from a single run.
type Pipeline struct {
	stores           *store.Stores
	reviewCollection string
	logger           *zap.Logger
}

// NewPipeline creates a seeding pipeline over the given stores
func NewPipeline(stores *store.Stores, reviewCollection string) *Pipeline {
	return &Pipeline{
		stores:           stores,
		reviewCollection: reviewCollection,
		logger:           logger.Get(),
	}
}

// Run executes the three loaders strictly sequentially. There is no
// rollback: a failure partway leaves earlier stores loaded.
func (p *Pipeline) Run(ctx context.Context, paths Paths) error {
	cities, err := ReadCities(paths.Cities)
	if err != nil {
		return err
	}
	scores, err := ReadScores(paths.Scores)
	if err != nil {
		return err
	}
	reviews, err := ReadReviews(paths.Reviews)
	if err != nil {
		return err
	}

	if err := p.SeedPostgres(ctx, cities, scores); err != nil {
		return fmt.Errorf("postgres seed failed: %w", err)
	}
	if err := p.SeedMongo(ctx, reviews); err != nil {
		return fmt.Errorf("mongo seed failed: %w", err)
	}
	if err := p.SeedGraph(ctx, cities, scores); err != nil {
		return fmt.Errorf("graph seed failed: %w", err)
	}

	p.logger.Info("Seeding complete",
		zap.Int("cities", len(cities)),
		zap.Int("scores", len(scores)),
		zap.Int("reviews", len(reviews)),
	)
	return nil
}

// SeedPostgres creates the tables if missing, clears them, and loads the
// city and score rows.
func (p *Pipeline) SeedPostgres(ctx context.Context, cities []CityRecord, scores []ScoreRecord) error {
	pool := p.stores.Postgres

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			department TEXT,
			region TEXT,
			population INTEGER DEFAULT 0,
			description TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			overall_score DOUBLE PRECISION DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			city_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			label TEXT,
			score DOUBLE PRECISION NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Full replace: scores first because they reference cities
	if _, err := pool.Exec(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM cities"); err != nil {
		return fmt.Errorf("failed to clear cities: %w", err)
	}

	bar := progressbar.Default(int64(len(cities)), "cities")
	for _, city := range cities {
		_, err := pool.Exec(ctx,
			`INSERT INTO cities (id, name, department, region, population, description, latitude, longitude, overall_score)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			city.ID, city.Name, city.Department, city.Region, city.Population,
			city.Description, city.Latitude, city.Longitude, city.OverallScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert city %d: %w", city.ID, err)
		}
		_ = bar.Add(1)
	}

	bar = progressbar.Default(int64(len(scores)), "scores")
	for _, score := range scores {
		_, err := pool.Exec(ctx,
			`INSERT INTO scores (city_id, category, label, score) VALUES ($1, $2, $3, $4)`,
			score.CityID, score.Category, score.Label, score.Score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert score for city %d: %w", score.CityID, err)
		}
		_ = bar.Add(1)
	}

	p.logger.Info("PostgreSQL seeded",
		zap.Int("cities", len(cities)),
		zap.Int("scores", len(scores)),
	)
	return nil
}

// SeedMongo clears the reviews collection and loads the review documents
func (p *Pipeline) SeedMongo(ctx context.Context, reviews []ReviewRecord) error {
	collection := p.stores.Mongo.Collection(p.reviewCollection)

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear reviews: %w", err)
	}

	bar := progressbar.Default(int64(len(reviews)), "reviews")
	for _, review := range reviews {
		doc := mongodb.ReviewDocument{
			CityID:    review.CityID,
			Author:    review.Author,
			Rating:    review.Rating,
			Comment:   review.Comment,
			Tags:      review.Tags,
			CreatedAt: review.CreatedAt,
		}
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
		_ = bar.Add(1)
	}

	p.logger.Info("MongoDB seeded", zap.Int("reviews", len(reviews)))
	return nil
}

// SeedGraph wipes the graph and rebuilds it: Criterion nodes from the
// distinct score labels, City nodes with their attribute copy, STRONG_IN
// edges for scores at or above the threshold, and the derived SIMILAR_TO
// edges in both directions.
func (p *Pipeline) SeedGraph(ctx context.Context, cities []CityRecord, scores []ScoreRecord) error {
	loader := graph.NewLoader(p.stores.Neo4j)

	if err := loader.Reset(ctx); err != nil {
		return err
	}
	if err := loader.CreateConstraints(ctx); err != nil {
		// Constraints may already exist from a previous run
		p.logger.Warn("Failed to create graph constraints", zap.Error(err))
	}

	criteria := make([]string, 0)
	seen := make(map[string]bool)
	for _, score := range scores {
		name := CriterionName(score)
		if !seen[name] {
			seen[name] = true
			criteria = append(criteria, name)
		}
	}
	if err := loader.MergeCriteria(ctx, criteria); err != nil {
		return err
	}

	bar := progressbar.Default(int64(len(cities)), "city nodes")
	for _, city := range cities {
		node := graph.CityNode{
			CityID:       city.ID,
			Name:         city.Name,
			Department:   city.Department,
			Region:       city.Region,
			Population:   city.Population,
			OverallScore: city.OverallScore,
		}
		if err := loader.MergeCity(ctx, node); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	strongIn := StrongInEdges(scores)
	bar = progressbar.Default(int64(len(strongIn)), "strong-in edges")
	for _, edge := range strongIn {
		if err := loader.CreateStrongIn(ctx, edge); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	similarities := DeriveSimilarities(strongIn)
	if err := loader.CreateSimilarEdges(ctx, similarities); err != nil {
		return err
	}

	p.logger.Info("Neo4j seeded",
		zap.Int("city_nodes", len(cities)),
		zap.Int("criteria", len(criteria)),
		zap.Int("strong_in", len(strongIn)),
		zap.Int("similar_to", len(similarities)),
	)
	return nil
}
