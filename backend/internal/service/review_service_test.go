package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartcity-explorer/backend/internal/mongodb"
	"smartcity-explorer/backend/internal/schema"
)

func TestGetReviews_MapsDocumentsWithCityID(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docID := primitive.NewObjectID()
	repo := &fakeReviewStore{
		docs: []mongodb.ReviewDocument{
			{ID: docID, CityID: 5, Author: "Marie D.", Rating: 4, Comment: "Top", Tags: []string{"culture"}, CreatedAt: createdAt},
		},
		total: 12,
	}
	svc := NewReviewService(repo)

	result, err := svc.GetReviews(context.Background(), 5, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Total)
	require.Len(t, result.Reviews, 1)
	review := result.Reviews[0]
	assert.Equal(t, docID.Hex(), review.ID, "store id exposed as a plain string")
	assert.Equal(t, 5, review.CityID)
	assert.Equal(t, createdAt, review.CreatedAt)
}

func TestCreateReview_CityIDComesFromPath(t *testing.T) {
	docID := primitive.NewObjectID()
	repo := &fakeReviewStore{
		created: &mongodb.ReviewDocument{
			ID:        docID,
			CityID:    9,
			Author:    "Paul",
			Rating:    5,
			Comment:   "Superbe",
			Tags:      []string{},
			CreatedAt: time.Now().UTC(),
		},
	}
	svc := NewReviewService(repo)

	review, err := svc.CreateReview(context.Background(), 9, schema.ReviewCreate{
		Author: "Paul",
		Rating: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, docID.Hex(), review.ID)
	assert.Equal(t, 9, review.CityID)
	assert.False(t, review.CreatedAt.IsZero(), "created_at must be a real timestamp")
	assert.NotNil(t, review.Tags)
}

func TestCreateReview_EmptyAuthorBecomesAnonyme(t *testing.T) {
	repo := &fakeReviewStore{
		created: &mongodb.ReviewDocument{
			ID:        primitive.NewObjectID(),
			CityID:    3,
			Author:    "Anonyme",
			Rating:    3,
			Tags:      []string{},
			CreatedAt: time.Now().UTC(),
		},
	}
	svc := NewReviewService(repo)

	_, err := svc.CreateReview(context.Background(), 3, schema.ReviewCreate{Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, "Anonyme", repo.lastInput.Author, "missing author is stored under the placeholder")

	_, err = svc.CreateReview(context.Background(), 3, schema.ReviewCreate{Author: "Paul", Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, "Paul", repo.lastInput.Author, "a provided author is kept as-is")
}

func TestGetAverageRating_AbsentStaysAbsent(t *testing.T) {
	repo := &fakeReviewStore{avg: nil}
	svc := NewReviewService(repo)

	avg, err := svc.GetAverageRating(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, avg, "zero reviews must surface as absent, not 0.0")
}

func TestGetAverageRating_PassesThroughValue(t *testing.T) {
	value := 4.3
	repo := &fakeReviewStore{avg: &value}
	svc := NewReviewService(repo)

	avg, err := svc.GetAverageRating(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.3, *avg, 1e-9)
}
