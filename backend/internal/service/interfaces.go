// Package service composes the repositories and shapes raw rows and
// documents into the response records the API returns.
package service

import (
	"context"

	"smartcity-explorer/backend/internal/graph"
	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/postgres"
)

// CityReader is the relational repository surface the services need
type CityReader interface {
	SearchCities(ctx context.Context, filters postgres.SearchFilters) ([]postgres.CityRow, int, error)
	GetCityByID(ctx context.Context, cityID int) (*postgres.CityRow, error)
	GetCityScores(ctx context.Context, cityID int) ([]postgres.ScoreRow, error)
}

// ReviewStore is the document repository surface the review service needs
type ReviewStore interface {
	GetReviews(ctx context.Context, cityID, page, pageSize int) ([]mongodb.ReviewDocument, int, error)
	CreateReview(ctx context.Context, cityID int, input mongodb.ReviewInput) (*mongodb.ReviewDocument, error)
	GetAverageRating(ctx context.Context, cityID int) (*float64, error)
}

// SimilarityReader is the graph repository surface the recommendation
// service needs
type SimilarityReader interface {
	GetSimilarCities(ctx context.Context, cityID, k int) ([]graph.SimilarCity, error)
	GetCityStrengths(ctx context.Context, cityID int) ([]string, error)
}
