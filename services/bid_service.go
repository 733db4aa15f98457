package services

import (
	"context"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"go.uber.org/zap"
)

// BidService manages the lifecycle of bids on a product: submission,
// partitioning into active vs. accepted, and seller acceptance with a
// time-boxed price override on the product.
type BidService interface {
	SubmitBid(ctx context.Context, productID, bidderID string, amount float64, now time.Time) (*models.Bid, error)
	FetchBids(ctx context.Context, productID string) (active, accepted []models.Bid, err error)
	AcceptBid(ctx context.Context, productID, bidderID string, amount float64, expiryHours int, now time.Time) error
	SuggestOffers(ctx context.Context, productID string, now time.Time) ([]float64, error)
}

type bidServiceImpl struct {
	products repository.ProductRepo
	bids     repository.BidRepo
	txn      repository.TxnRunner
	logger   *zap.Logger
}

func NewBidService(products repository.ProductRepo, bids repository.BidRepo, txn repository.TxnRunner, logger *zap.Logger) BidService {
	return &bidServiceImpl{
		products: products,
		bids:     bids,
		txn:      txn,
		logger:   logger,
	}
}

// SubmitBid upserts a pending bid keyed by (productID, bidderID). A bidder
// resubmitting replaces their earlier bid, so each bidder holds exactly one.
func (s *bidServiceImpl) SubmitBid(ctx context.Context, productID, bidderID string, amount float64, now time.Time) (*models.Bid, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsSold {
		return nil, apperrors.ErrProductSold
	}

	bid := &models.Bid{
		ProductID: productID,
		BidderID:  bidderID,
		Amount:    amount,
		Timestamp: now,
		Status:    models.BidStatusPending,
	}
	if err := s.bids.Upsert(ctx, bid); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.logger.Info("Bid submitted",
		zap.String("productID", productID),
		zap.String("bidderID", bidderID),
		zap.Float64("amount", amount),
	)
	return bid, nil
}

// FetchBids partitions a product's bids by persisted status: accepted bids
// keep their status for history even after the offer window lapses; all
// others are active, newest submission first.
func (s *bidServiceImpl) FetchBids(ctx context.Context, productID string) ([]models.Bid, []models.Bid, error) {
	all, err := s.bids.FindByProduct(ctx, productID)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var active, accepted []models.Bid
	for _, b := range all {
		if b.Status == models.BidStatusAccepted {
			accepted = append(accepted, b)
		} else {
			active = append(active, b)
		}
	}
	return active, accepted, nil
}

// AcceptBid applies the accepted amount as the product's price override and
// marks the bid accepted. Acceptance is rejected while another accepted
// offer's window is still open. The two writes run in one storage
// transaction where the deployment supports it; otherwise they run
// sequentially and a failure of the second write surfaces as
// ErrPartialAcceptance so the caller can re-sync.
func (s *bidServiceImpl) AcceptBid(ctx context.Context, productID, bidderID string, amount float64, expiryHours int, now time.Time) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if expiryHours <= 0 {
		return apperrors.ErrInvalidExpiry
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.IsSold {
		return apperrors.ErrProductSold
	}

	if _, err := s.bids.FindOne(ctx, productID, bidderID); err != nil {
		if err == repository.ErrNoDocument {
			return apperrors.ErrBidNotFound
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	accepted, err := s.bids.FindAccepted(ctx, productID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	for _, b := range accepted {
		if b.BidderID != bidderID && b.ExpiresAt != nil && now.Before(*b.ExpiresAt) {
			return apperrors.ErrOfferAlreadyActive
		}
	}

	expiresAt := now.Add(time.Duration(expiryHours) * time.Hour)

	// originalPrice is captured only once: a later acceptance must not
	// overwrite the true pre-override price.
	originalPrice := product.Price
	if product.OriginalPrice != nil {
		originalPrice = *product.OriginalPrice
	}

	productSet := map[string]interface{}{
		"price":           amount,
		"currentBid":      amount,
		"buyerID":         bidderID,
		"offerAcceptedAt": now,
		"offerExpiresAt":  expiresAt,
		"originalPrice":   originalPrice,
	}
	bidSet := map[string]interface{}{
		"status":              models.BidStatusAccepted,
		"acceptedAt":          now,
		"expiryDurationHours": expiryHours,
		"expiresAt":           expiresAt,
	}

	apply := func(ctx context.Context) error {
		if err := s.products.Update(ctx, productID, productSet, nil); err != nil {
			return err
		}
		return s.bids.Update(ctx, productID, bidderID, bidSet)
	}

	err = s.txn.Run(ctx, apply)
	if err == repository.ErrTxnUnsupported {
		err = s.acceptWithoutTxn(ctx, productID, bidderID, productSet, bidSet)
	}
	if err != nil {
		if appErr, ok := err.(*apperrors.Error); ok {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.logger.Info("Bid accepted",
		zap.String("productID", productID),
		zap.String("bidderID", bidderID),
		zap.Float64("amount", amount),
		zap.Time("expiresAt", expiresAt),
	)
	return nil
}

// acceptWithoutTxn issues the two acceptance writes sequentially. A failure
// after the product write leaves a half-applied state, which is reported
// distinctly so the caller can attempt a compensating re-sync.
func (s *bidServiceImpl) acceptWithoutTxn(ctx context.Context, productID, bidderID string, productSet, bidSet map[string]interface{}) error {
	if err := s.products.Update(ctx, productID, productSet, nil); err != nil {
		return err
	}
	if err := s.bids.Update(ctx, productID, bidderID, bidSet); err != nil {
		s.logger.Error("Bid record update failed after product override was applied",
			zap.String("productID", productID),
			zap.String("bidderID", bidderID),
			zap.Error(err),
		)
		return apperrors.Wrap(apperrors.ErrPartialAcceptance, err)
	}
	return nil
}

// SuggestOffers computes discount price points for opening an offer on a
// product, based on its price and listing age.
func (s *bidServiceImpl) SuggestOffers(ctx context.Context, productID string, now time.Time) ([]float64, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Suggestions work off the listed price before any offer override.
	basePrice := product.Price
	if product.OriginalPrice != nil {
		basePrice = *product.OriginalPrice
	}
	return SuggestOffers(basePrice, product.CreatedAt, now), nil
}

func (s *bidServiceImpl) findProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err == repository.ErrNoDocument {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return product, nil
}
