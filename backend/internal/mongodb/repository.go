// Package mongodb implements the document repository for user reviews.
package mongodb

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"smartcity-explorer/backend/pkg/apperrors"
	"smartcity-explorer/backend/pkg/logger"
)

// ReviewDocument is the raw document shape stored in the reviews collection
type ReviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CityID    int                `bson:"city_id"`
	Author    string             `bson:"author"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	Tags      []string           `bson:"tags"`
	CreatedAt time.Time          `bson:"created_at"`
}

// ReviewInput carries the already-validated fields for a new review. Rating
// bounds are enforced upstream by the contract layer, not here.
type ReviewInput struct {
	Author  string
	Rating  int
	Comment string
	Tags    []string
}

// ReviewRepository handles all review collection operations
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewReviewRepository binds the repository to the reviews collection
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection(collectionName),
		logger:     logger.Get(),
	}
}

// GetReviews returns one page of reviews for a city, newest first, plus the
// total count matching the filter independent of the page window.
func (r *ReviewRepository) GetReviews(ctx context.Context, cityID, page, pageSize int) ([]ReviewDocument, int, error) {
	filter := bson.M{"city_id": cityID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "count reviews", err)
	}

	skip := (page - 1) * pageSize
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "find reviews", err)
	}
	defer cursor.Close(ctx)

	docs := make([]ReviewDocument, 0, pageSize)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "decode review", err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "iterate reviews", err)
	}

	return docs, int(total), nil
}

// CreateReview stamps the document with the city id and a server-side UTC
// creation timestamp, inserts it, and returns it with its new id.
func (r *ReviewRepository) CreateReview(ctx context.Context, cityID int, input ReviewInput) (*ReviewDocument, error) {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := ReviewDocument{
		ID:        primitive.NewObjectID(),
		CityID:    cityID,
		Author:    input.Author,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "insert review", err)
	}

	r.logger.Info("Review created",
		zap.Int("city_id", cityID),
		zap.String("review_id", doc.ID.Hex()),
	)
	return &doc, nil
}

// GetAverageRating averages all review ratings for a city, rounded to one
// decimal place. Returns nil (absent) when the city has no reviews.
func (r *ReviewRepository) GetAverageRating(ctx context.Context, cityID int) (*float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"city_id": cityID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"avg_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "aggregate ratings", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AvgRating float64 `bson:"avg_rating"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperrors.NewStoreUnavailable(apperrors.ErrorTypeMongo, "decode rating aggregate", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	avg := roundRating(results[0].AvgRating)
	return &avg, nil
}

// roundRating rounds to one decimal place, e.g. [4,5,4] averages to 4.3
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
