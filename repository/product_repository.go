package repository

import (
	"context"
	"errors"

	"github.com/mahasultan/resouq-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoDocument is returned by Find* methods when no document matches.
var ErrNoDocument = errors.New("document not found")

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"sellerID": sellerID})
}

func (r *ProductRepository) FindWithActiveOffers(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"offerExpiresAt": bson.M{"$exists": true}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	if product.ID == "" {
		product.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return "", err
	}
	return product.ID, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, set map[string]interface{}, unset []string) error {
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = bson.M(set)
	}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			fields[f] = ""
		}
		update["$unset"] = fields
	}
	if len(update) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
