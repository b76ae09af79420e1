package service

import (
	"context"
	"errors"

	"smartcity-explorer/backend/internal/graph"
	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/postgres"
)

type fakeCityReader struct {
	cities      map[int]postgres.CityRow
	scores      map[int][]postgres.ScoreRow
	searchRows  []postgres.CityRow
	searchTotal int

	searchCalls    int
	getByIDCalls   int
	getScoresCalls int

	searchErr error
	getErr    error
	scoresErr error
}

func (f *fakeCityReader) SearchCities(_ context.Context, _ postgres.SearchFilters) ([]postgres.CityRow, int, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.searchRows, f.searchTotal, nil
}

func (f *fakeCityReader) GetCityByID(_ context.Context, cityID int) (*postgres.CityRow, error) {
	f.getByIDCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.cities[cityID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeCityReader) GetCityScores(_ context.Context, cityID int) ([]postgres.ScoreRow, error) {
	f.getScoresCalls++
	if f.scoresErr != nil {
		return nil, f.scoresErr
	}
	return f.scores[cityID], nil
}

type fakeReviewStore struct {
	docs  []mongodb.ReviewDocument
	total int
	avg   *float64

	createCalls int
	created     *mongodb.ReviewDocument
	lastInput   mongodb.ReviewInput

	err error
}

func (f *fakeReviewStore) GetReviews(_ context.Context, _, _, _ int) ([]mongodb.ReviewDocument, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.docs, f.total, nil
}

func (f *fakeReviewStore) CreateReview(_ context.Context, cityID int, input mongodb.ReviewInput) (*mongodb.ReviewDocument, error) {
	f.createCalls++
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return nil, errors.New("no canned document")
}

func (f *fakeReviewStore) GetAverageRating(_ context.Context, _ int) (*float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.avg, nil
}

type fakeSimilarityReader struct {
	similar []graph.SimilarCity

	similarCalls   int
	strengthsCalls int

	err error
}

func (f *fakeSimilarityReader) GetSimilarCities(_ context.Context, _, _ int) ([]graph.SimilarCity, error) {
	f.similarCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.similar, nil
}

func (f *fakeSimilarityReader) GetCityStrengths(_ context.Context, _ int) ([]string, error) {
	f.strengthsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []string{}, nil
}
