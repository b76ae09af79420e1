package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/seed"
	"smartcity-explorer/backend/internal/store"
	"smartcity-explorer/backend/pkg/config"
	"smartcity-explorer/backend/pkg/logger"
)

func main() {
	citiesPath := flag.String("cities", "datasets/cities.csv", "Path to the cities CSV dataset")
	scoresPath := flag.String("scores", "datasets/scores.csv", "Path to the scores CSV dataset")
	reviewsPath := flag.String("reviews", "datasets/reviews.jsonl", "Path to the reviews JSONL dataset")
	flag.Parse()

	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to the three stores
	ctx := context.Background()
	stores, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to stores", zap.Error(err))
	}
	defer stores.Close(context.Background())

	pipeline := seed.NewPipeline(stores, cfg.ReviewCollection)
	err = pipeline.Run(ctx, seed.Paths{
		Cities:  *citiesPath,
		Scores:  *scoresPath,
		Reviews: *reviewsPath,
	})
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Seeding finished")
}
