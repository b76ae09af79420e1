package service

import (
	"context"
	"fmt"

	"smartcity-explorer/backend/internal/postgres"
	"smartcity-explorer/backend/internal/schema"
)

// CityService orchestrates city search, detail and score lookups
type CityService struct {
	cities CityReader
}

// NewCityService creates a new city service
func NewCityService(cities CityReader) *CityService {
	return &CityService{cities: cities}
}

// SearchCities runs the filtered, sorted, paginated search and wraps the
// page of summaries with the total match count.
func (s *CityService) SearchCities(ctx context.Context, filters postgres.SearchFilters) (*schema.CityListResponse, error) {
	rows, total, err := s.cities.SearchCities(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("city search failed: %w", err)
	}

	cities := make([]schema.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, cityFromRow(row))
	}

	return &schema.CityListResponse{
		Cities:   cities,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// GetCityDetail assembles the full city record from two independent lookups.
// Returns nil when the city does not exist; the score lookup is skipped
// entirely in that case.
func (s *CityService) GetCityDetail(ctx context.Context, cityID int) (*schema.CityDetail, error) {
	row, err := s.cities.GetCityByID(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("city lookup failed: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	scoreRows, err := s.cities.GetCityScores(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("score lookup failed: %w", err)
	}

	return &schema.CityDetail{
		City:        cityFromRow(*row),
		Description: row.Description,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		Scores:      scoresFromRows(scoreRows),
	}, nil
}

// GetCityScores returns the per-category scores plus the stored overall
// score. The overall value is read as stored, not recomputed from the
// category rows. Returns nil when the city does not exist.
func (s *CityService) GetCityScores(ctx context.Context, cityID int) (*schema.CityScores, error) {
	row, err := s.cities.GetCityByID(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("city lookup failed: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	scoreRows, err := s.cities.GetCityScores(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("score lookup failed: %w", err)
	}

	return &schema.CityScores{
		CityID:  cityID,
		Scores:  scoresFromRows(scoreRows),
		Overall: row.OverallScore,
	}, nil
}

func cityFromRow(row postgres.CityRow) schema.City {
	return schema.City{
		ID:           row.ID,
		Name:         row.Name,
		Department:   row.Department,
		Region:       row.Region,
		Population:   row.Population,
		OverallScore: row.OverallScore,
	}
}

func scoresFromRows(rows []postgres.ScoreRow) []schema.ScoreCategory {
	scores := make([]schema.ScoreCategory, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, schema.ScoreCategory{
			Category: row.Category,
			Label:    row.Label,
			Score:    row.Score,
		})
	}
	return scores
}
