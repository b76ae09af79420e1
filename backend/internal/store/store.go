// Package store owns the process-wide connection pools for the three
// backends. One Stores value is constructed at startup and injected into
// every repository; Close tears all three down on shutdown.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"smartcity-explorer/backend/pkg/config"
)

// Stores holds the three long-lived connection sources
type Stores struct {
	Postgres    *pgxpool.Pool
	MongoClient *mongo.Client
	Mongo       *mongo.Database
	Neo4j       neo4j.DriverWithContext
}

// New connects to all three backends and verifies each connection
func New(ctx context.Context, cfg *config.Config) (*Stores, error) {
	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		pool.Close()
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		pool.Close()
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		pool.Close()
		_ = mongoClient.Disconnect(ctx)
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	return &Stores{
		Postgres:    pool,
		MongoClient: mongoClient,
		Mongo:       mongoClient.Database(cfg.MongoDatabase),
		Neo4j:       driver,
	}, nil
}

// Close releases all three connection sources
func (s *Stores) Close(ctx context.Context) {
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	if s.MongoClient != nil {
		_ = s.MongoClient.Disconnect(ctx)
	}
	if s.Neo4j != nil {
		_ = s.Neo4j.Close(ctx)
	}
}
