package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"smartcity-explorer/backend/internal/api"
	"smartcity-explorer/backend/internal/graph"
	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/postgres"
	"smartcity-explorer/backend/internal/service"
	"smartcity-explorer/backend/internal/store"
	"smartcity-explorer/backend/pkg/config"
	"smartcity-explorer/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting SmartCity Explorer API server...")

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

	// Initialize repositories and services
	cityRepo := postgres.NewCityRepository(stores.Postgres)
	reviewRepo := mongodb.NewReviewRepository(stores.Mongo, cfg.ReviewCollection)
	graphRepo := graph.NewRepository(stores.Neo4j)

	handler := api.NewHandler(api.Config{
		Cities:          service.NewCityService(cityRepo),
		Reviews:         service.NewReviewService(reviewRepo),
		Recommendations: service.NewRecommendationService(graphRepo, cityRepo),
		Version:         cfg.Version,
		Logger:          log,
	})

	router := handler.Router(cfg.IsProduction())

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
