package repository

import (
	"context"

	"github.com/mahasultan/resouq-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BidRepository stores bids in a single "bids" collection keyed
// "<productID>:<bidderID>", which gives the at-most-one-bid-per-bidder
// semantics for free via the primary key.
type BidRepository struct {
	collection *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{
		collection: db.Collection("bids"),
	}
}

func bidKey(productID, bidderID string) string {
	return productID + ":" + bidderID
}

func (r *BidRepository) Upsert(ctx context.Context, bid *models.Bid) error {
	bid.ID = bidKey(bid.ProductID, bid.BidderID)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": bid.ID}, bid, opts)
	return err
}

func (r *BidRepository) FindOne(ctx context.Context, productID, bidderID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.collection.FindOne(ctx, bson.M{"_id": bidKey(productID, bidderID)}).Decode(&bid)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) FindByProduct(ctx context.Context, productID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"productID": productID})
}

func (r *BidRepository) FindAccepted(ctx context.Context, productID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"productID": productID, "status": models.BidStatusAccepted})
}

func (r *BidRepository) find(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bids []models.Bid
	if err = cursor.All(ctx, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *BidRepository) Update(ctx context.Context, productID, bidderID string, set map[string]interface{}) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": bidKey(productID, bidderID)},
		bson.M{"$set": bson.M(set)},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
