package api

import (
	"context"

	"smartcity-explorer/backend/internal/postgres"
	"smartcity-explorer/backend/internal/schema"
)

// CityService is the city orchestration surface the routes delegate to
type CityService interface {
	SearchCities(ctx context.Context, filters postgres.SearchFilters) (*schema.CityListResponse, error)
	GetCityDetail(ctx context.Context, cityID int) (*schema.CityDetail, error)
	GetCityScores(ctx context.Context, cityID int) (*schema.CityScores, error)
}

// ReviewService is the review orchestration surface the routes delegate to
type ReviewService interface {
	GetReviews(ctx context.Context, cityID, page, pageSize int) (*schema.ReviewsResponse, error)
	CreateReview(ctx context.Context, cityID int, input schema.ReviewCreate) (*schema.Review, error)
}

// RecommendationService is the recommendation surface the routes delegate to
type RecommendationService interface {
	GetRecommendations(ctx context.Context, cityID, k int) (*schema.RecommendationsResponse, error)
}
