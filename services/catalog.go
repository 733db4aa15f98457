package services

import (
	"context"
	"sync"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"go.uber.org/zap"
)

// Catalog is a concurrency-safe in-memory mirror of the product, category
// and seller-rating documents. View derivations read a consistent snapshot
// while refreshes swap it wholesale; if two refreshes overlap, the last one
// to complete wins.
type Catalog struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	ratings    repository.RatingRepo
	expiry     *ExpiryMonitor
	logger     *zap.Logger

	mu          sync.RWMutex
	items       []models.Product
	cats        []models.Category
	summaries   []models.SellerRatingSummary
	refreshedAt time.Time
}

func NewCatalog(
	products repository.ProductRepo,
	categories repository.CategoryRepo,
	ratings repository.RatingRepo,
	expiry *ExpiryMonitor,
	logger *zap.Logger,
) *Catalog {
	return &Catalog{
		products:   products,
		categories: categories,
		ratings:    ratings,
		expiry:     expiry,
		logger:     logger,
	}
}

// Refresh reloads the mirror from storage. Before storing, each product
// holding an offer override is reconciled so expired overrides never reach
// a derived view; reconcile failures are logged and the stale override is
// kept until the next refresh succeeds.
func (c *Catalog) Refresh(ctx context.Context) error {
	now := time.Now().UTC()

	products, err := c.products.FindAll(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	for i := range products {
		p := &products[i]
		if !p.HasActiveOffer() || !now.After(*p.OfferExpiresAt) {
			continue
		}
		result, err := c.expiry.Reconcile(ctx, p.ID, now)
		if err != nil {
			c.logger.Warn("Reconcile during refresh failed",
				zap.String("productID", p.ID), zap.Error(err))
			continue
		}
		if result == Reverted {
			p.Price = *p.OriginalPrice
			p.CurrentBid = nil
			p.BuyerID = nil
			p.OfferAcceptedAt = nil
			p.OfferExpiresAt = nil
			p.OriginalPrice = nil
		}
	}

	categories, err := c.categories.FindAll(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	summaries, err := c.ratings.SellerSummaries(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	c.mu.Lock()
	c.items = products
	c.cats = categories
	c.summaries = summaries
	c.refreshedAt = now
	c.mu.Unlock()

	c.logger.Info("Catalog refreshed",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
	)
	return nil
}

// Products returns a copy of the mirrored product list.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.items...)
}

// Categories returns a copy of the mirrored category list.
func (c *Catalog) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Category(nil), c.cats...)
}

// SellerSummaries returns a copy of the mirrored rating summaries.
func (c *Catalog) SellerSummaries() []models.SellerRatingSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.SellerRatingSummary(nil), c.summaries...)
}

// RefreshedAt reports when the mirror was last swapped.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}
