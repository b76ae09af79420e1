package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartcity-explorer/backend/pkg/apperrors"
)

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.333333333, 4.3},
		{4.35, 4.4},
		{5.0, 5.0},
		{1.0, 1.0},
		{2.49, 2.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, roundRating(tc.in), 1e-9, "in=%v", tc.in)
	}
}

// Integration tests require a running MongoDB.
// Set TEST_MONGO_URI to enable them.
func setupTestRepository(t *testing.T) (*ReviewRepository, *mongo.Collection) {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("smartcity_test")
	collection := db.Collection("reviews")
	_, err = collection.DeleteMany(ctx, bson.M{})
	require.NoError(t, err)

	return NewReviewRepository(db, "reviews"), collection
}

func TestCreateReview_StampsIdentityAndTimestamp(t *testing.T) {
	repo, _ := setupTestRepository(t)
	ctx := context.Background()

	before := time.Now().UTC()
	doc, err := repo.CreateReview(ctx, 42, ReviewInput{
		Author:  "Marie D.",
		Rating:  4,
		Comment: "Très agréable à vivre.",
		Tags:    []string{"transport", "culture"},
	})
	require.NoError(t, err)

	assert.False(t, doc.ID.IsZero(), "expected a freshly generated id")
	assert.Equal(t, 42, doc.CityID)
	assert.False(t, doc.CreatedAt.Before(before), "created_at should be server-assigned")
}

func TestGetReviews_PaginatesNewestFirst(t *testing.T) {
	repo, _ := setupTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.CreateReview(ctx, 7, ReviewInput{Author: "a", Rating: 3})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	docs, total, err := repo.GetReviews(ctx, 7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total, "total is independent of the page window")
	require.Len(t, docs, 2)
	assert.True(t, !docs[0].CreatedAt.Before(docs[1].CreatedAt), "newest first")
}

func TestGetAverageRating_AbsentWithoutReviews(t *testing.T) {
	repo, _ := setupTestRepository(t)
	ctx := context.Background()

	avg, err := repo.GetAverageRating(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, avg, "no reviews must yield absent, not 0.0")
}

func TestGetAverageRating_RoundsToOneDecimal(t *testing.T) {
	repo, _ := setupTestRepository(t)
	ctx := context.Background()

	for _, rating := range []int{4, 5, 4} {
		_, err := repo.CreateReview(ctx, 3, ReviewInput{Author: "a", Rating: rating})
		require.NoError(t, err)
	}

	avg, err := repo.GetAverageRating(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.3, *avg, 1e-9)
}

func TestGetReviews_DisconnectedClientYieldsMongoError(t *testing.T) {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	require.NoError(t, client.Disconnect(ctx))

	repo := NewReviewRepository(client.Database("smartcity_test"), "reviews")
	_, _, err = repo.GetReviews(ctx, 1, 1, 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeMongo),
		"store failures must carry the mongo category")
}
