package repository

import (
	"context"

	"github.com/mahasultan/resouq-backend/models"
)

// ProductRepo defines the product document operations used by the services.
// The interface keeps plain Go types at the boundary to make swapping
// adapters (and mocking in tests) easier.
type ProductRepo interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error)
	// FindWithActiveOffers returns products whose offerExpiresAt field is set.
	FindWithActiveOffers(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (string, error)
	// Update applies field sets and field deletions to one document.
	Update(ctx context.Context, id string, set map[string]interface{}, unset []string) error
}

// BidRepo manages the bids sub-collection. Bids are keyed by
// (productID, bidderID); an upsert replaces any earlier bid from the same
// bidder.
type BidRepo interface {
	Upsert(ctx context.Context, bid *models.Bid) error
	FindOne(ctx context.Context, productID, bidderID string) (*models.Bid, error)
	// FindByProduct returns all bids for a product, newest submission first.
	FindByProduct(ctx context.Context, productID string) ([]models.Bid, error)
	FindAccepted(ctx context.Context, productID string) ([]models.Bid, error)
	Update(ctx context.Context, productID, bidderID string, set map[string]interface{}) error
}

// CategoryRepo defines category lookups.
type CategoryRepo interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (string, error)
}

// RatingRepo stores seller ratings and computes per-seller aggregates.
type RatingRepo interface {
	Create(ctx context.Context, rating *models.Rating) (string, error)
	SellerSummaries(ctx context.Context) ([]models.SellerRatingSummary, error)
	SellerSummary(ctx context.Context, sellerID string) (*models.SellerRatingSummary, error)
}

// OrderRepo stores completed purchases.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	FindByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
}

// TxnRunner executes fn inside a storage transaction when the deployment
// supports one. Implementations that cannot provide transactions return
// ErrTxnUnsupported from Run without invoking fn.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
