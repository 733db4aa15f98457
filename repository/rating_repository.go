package repository

import (
	"context"

	"github.com/mahasultan/resouq-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{
		collection: db.Collection("ratings"),
	}
}

func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) (string, error) {
	if rating.ID == "" {
		rating.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.collection.InsertOne(ctx, rating); err != nil {
		return "", err
	}
	return rating.ID, nil
}

func summaryPipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":     "$sellerID",
		"average": bson.M{"$avg": "$stars"},
		"count":   bson.M{"$sum": 1},
	}}})
	return pipeline
}

func (r *RatingRepository) SellerSummaries(ctx context.Context) ([]models.SellerRatingSummary, error) {
	cursor, err := r.collection.Aggregate(ctx, summaryPipeline(nil))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.SellerRatingSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *RatingRepository) SellerSummary(ctx context.Context, sellerID string) (*models.SellerRatingSummary, error) {
	cursor, err := r.collection.Aggregate(ctx, summaryPipeline(bson.M{"sellerID": sellerID}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.SellerRatingSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrNoDocument
	}
	return &summaries[0], nil
}
