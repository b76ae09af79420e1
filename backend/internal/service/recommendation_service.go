package service

import (
	"context"
	"fmt"

	"smartcity-explorer/backend/internal/graph"
	"smartcity-explorer/backend/internal/schema"
)

// RecommendationService cross-references the similarity graph against the
// relational store, which remains the source of truth for city attributes.
type RecommendationService struct {
	similarity SimilarityReader
	cities     CityReader
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(similarity SimilarityReader, cities CityReader) *RecommendationService {
	return &RecommendationService{
		similarity: similarity,
		cities:     cities,
	}
}

// GetRecommendations returns the k most similar cities to the given one.
// The relational store is the sole existence gate: if the source city is
// absent there, nil is returned and the graph is never consulted. Each
// result is re-fetched from the relational store; the graph's attribute
// copy is only a fallback for ids that no longer resolve.
func (s *RecommendationService) GetRecommendations(ctx context.Context, cityID, k int) (*schema.RecommendationsResponse, error) {
	source, err := s.cities.GetCityByID(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("source city lookup failed: %w", err)
	}
	if source == nil {
		return nil, nil
	}

	similar, err := s.similarity.GetSimilarCities(ctx, cityID, k)
	if err != nil {
		return nil, fmt.Errorf("similarity traversal failed: %w", err)
	}

	items := make([]schema.RecommendationItem, 0, len(similar))
	for _, sc := range similar {
		city, err := s.resolveCity(ctx, sc)
		if err != nil {
			return nil, fmt.Errorf("target city lookup failed: %w", err)
		}
		items = append(items, schema.RecommendationItem{
			City:            city,
			SimilarityScore: sc.SimilarityScore,
			CommonStrengths: sc.CommonStrengths,
		})
	}

	return &schema.RecommendationsResponse{
		SourceCity:      source.Name,
		Recommendations: items,
	}, nil
}

// resolveCity prefers relational attributes over the graph's cached copy.
// A target id that resolves to nothing degrades to the graph attributes,
// with zero values filling whatever the graph is missing.
func (s *RecommendationService) resolveCity(ctx context.Context, sc graph.SimilarCity) (schema.City, error) {
	if sc.CityID != 0 {
		row, err := s.cities.GetCityByID(ctx, sc.CityID)
		if err != nil {
			return schema.City{}, err
		}
		if row != nil {
			return cityFromRow(*row), nil
		}
	}
	return schema.City{
		ID:           sc.CityID,
		Name:         sc.Name,
		Department:   sc.Department,
		Region:       sc.Region,
		Population:   sc.Population,
		OverallScore: sc.OverallScore,
	}, nil
}
