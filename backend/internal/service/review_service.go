package service

import (
	"context"
	"fmt"

	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/schema"
)

// ReviewService orchestrates review listing and creation
type ReviewService struct {
	reviews ReviewStore
}

// NewReviewService creates a new review service
func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// GetReviews returns one page of a city's reviews plus the total count
func (s *ReviewService) GetReviews(ctx context.Context, cityID, page, pageSize int) (*schema.ReviewsResponse, error) {
	docs, total, err := s.reviews.GetReviews(ctx, cityID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("review lookup failed: %w", err)
	}

	reviews := make([]schema.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, reviewFromDocument(cityID, doc))
	}

	return &schema.ReviewsResponse{
		Reviews: reviews,
		Total:   total,
	}, nil
}

// CreateReview stores a validated review submission and returns the created
// record. The city id comes from the path, never from the body. A missing
// author is stored under the "Anonyme" placeholder.
func (s *ReviewService) CreateReview(ctx context.Context, cityID int, input schema.ReviewCreate) (*schema.Review, error) {
	author := input.Author
	if author == "" {
		author = "Anonyme"
	}
	doc, err := s.reviews.CreateReview(ctx, cityID, mongodb.ReviewInput{
		Author:  author,
		Rating:  input.Rating,
		Comment: input.Comment,
		Tags:    input.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("review creation failed: %w", err)
	}

	review := reviewFromDocument(cityID, *doc)
	return &review, nil
}

// GetAverageRating returns the mean review rating for a city, or nil when no
// reviews exist. The distinction from 0.0 matters to callers.
func (s *ReviewService) GetAverageRating(ctx context.Context, cityID int) (*float64, error) {
	avg, err := s.reviews.GetAverageRating(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("rating aggregation failed: %w", err)
	}
	return avg, nil
}

func reviewFromDocument(cityID int, doc mongodb.ReviewDocument) schema.Review {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return schema.Review{
		ID:        doc.ID.Hex(),
		CityID:    cityID,
		Author:    doc.Author,
		Rating:    doc.Rating,
		Comment:   doc.Comment,
		Tags:      tags,
		CreatedAt: doc.CreatedAt,
	}
}
