package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newBidService(products *fakeProductRepo, bids *fakeBidRepo, txn *fakeTxnRunner) services.BidService {
	logger, _ := zap.NewDevelopment()
	return services.NewBidService(products, bids, txn, logger)
}

func testProduct() *models.Product {
	return &models.Product{
		ID:        "p1",
		Name:      "Leather bag",
		Price:     100,
		SellerID:  "seller1",
		CreatedAt: day(1),
	}
}

func TestSubmitBid_InvalidAmount(t *testing.T) {
	svc := newBidService(newFakeProductRepo(testProduct()), newFakeBidRepo(), &fakeTxnRunner{})

	_, err := svc.SubmitBid(context.Background(), "p1", "buyer1", 0, day(2))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = svc.SubmitBid(context.Background(), "p1", "buyer1", -5, day(2))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestSubmitBid_ProductNotFound(t *testing.T) {
	svc := newBidService(newFakeProductRepo(), newFakeBidRepo(), &fakeTxnRunner{})

	_, err := svc.SubmitBid(context.Background(), "missing", "buyer1", 50, day(2))

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestSubmitBid_ResubmissionOverwrites(t *testing.T) {
	bids := newFakeBidRepo()
	svc := newBidService(newFakeProductRepo(testProduct()), bids, &fakeTxnRunner{})

	_, err := svc.SubmitBid(context.Background(), "p1", "buyer1", 50, day(2))
	assert.NoError(t, err)
	_, err = svc.SubmitBid(context.Background(), "p1", "buyer1", 60, day(3))
	assert.NoError(t, err)

	all, _ := bids.FindByProduct(context.Background(), "p1")
	assert.Len(t, all, 1)
	assert.Equal(t, 60.0, all[0].Amount)
	assert.Equal(t, models.BidStatusPending, all[0].Status)
	assert.Equal(t, day(3), all[0].Timestamp)
}

func TestFetchBids_PartitionsByStatus(t *testing.T) {
	bids := newFakeBidRepo()
	svc := newBidService(newFakeProductRepo(testProduct()), bids, &fakeTxnRunner{})

	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer1", 50, day(2))
	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer2", 70, day(3))
	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer3", 60, day(4))
	err := svc.AcceptBid(context.Background(), "p1", "buyer2", 70, 24, day(5))
	assert.NoError(t, err)

	active, accepted, err := svc.FetchBids(context.Background(), "p1")
	assert.NoError(t, err)

	assert.Len(t, accepted, 1)
	assert.Equal(t, "buyer2", accepted[0].BidderID)

	// active bids newest first
	assert.Len(t, active, 2)
	assert.Equal(t, "buyer3", active[0].BidderID)
	assert.Equal(t, "buyer1", active[1].BidderID)
}

func TestAcceptBid_AppliesOverride(t *testing.T) {
	products := newFakeProductRepo(testProduct())
	bids := newFakeBidRepo()
	svc := newBidService(products, bids, &fakeTxnRunner{})
	acceptedAt := day(5)

	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer1", 80, day(2))
	err := svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 24, acceptedAt)
	assert.NoError(t, err)

	p := products.products["p1"]
	assert.Equal(t, 80.0, p.Price)
	assert.Equal(t, 80.0, *p.CurrentBid)
	assert.Equal(t, "buyer1", *p.BuyerID)
	assert.Equal(t, acceptedAt, *p.OfferAcceptedAt)
	assert.Equal(t, acceptedAt.Add(24*time.Hour), *p.OfferExpiresAt)
	assert.Equal(t, 100.0, *p.OriginalPrice)

	b := bids.bids[bidKey("p1", "buyer1")]
	assert.Equal(t, models.BidStatusAccepted, b.Status)
	assert.Equal(t, acceptedAt, *b.AcceptedAt)
	assert.Equal(t, 24, *b.ExpiryDurationHours)
	assert.Equal(t, acceptedAt.Add(24*time.Hour), *b.ExpiresAt)
}

func TestAcceptBid_UnknownBidderLeavesProductUntouched(t *testing.T) {
	products := newFakeProductRepo(testProduct())
	svc := newBidService(products, newFakeBidRepo(), &fakeTxnRunner{unsupported: true})

	err := svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 24, day(5))

	assert.ErrorIs(t, err, apperrors.ErrBidNotFound)
	p := products.products["p1"]
	assert.Equal(t, 100.0, p.Price)
	assert.Nil(t, p.BuyerID)
	assert.Nil(t, p.OfferExpiresAt)
}

func TestAcceptBid_InvalidExpiry(t *testing.T) {
	svc := newBidService(newFakeProductRepo(testProduct()), newFakeBidRepo(), &fakeTxnRunner{})

	err := svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 0, day(5))

	assert.ErrorIs(t, err, apperrors.ErrInvalidExpiry)
}

func TestAcceptBid_RejectsWhileAnotherOfferActive(t *testing.T) {
	products := newFakeProductRepo(testProduct())
	bids := newFakeBidRepo()
	svc := newBidService(products, bids, &fakeTxnRunner{})

	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer1", 80, day(2))
	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer2", 90, day(3))
	assert.NoError(t, svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 24, day(5)))

	// second acceptance inside the first offer's window is rejected
	err := svc.AcceptBid(context.Background(), "p1", "buyer2", 90, 24, day(5).Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyActive)

	// once the window lapses, another bid may be accepted
	err = svc.AcceptBid(context.Background(), "p1", "buyer2", 90, 24, day(5).Add(25*time.Hour))
	assert.NoError(t, err)
}

func TestAcceptBid_PreservesOriginalPrice(t *testing.T) {
	products := newFakeProductRepo(testProduct())
	bids := newFakeBidRepo()
	svc := newBidService(products, bids, &fakeTxnRunner{})

	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer1", 80, day(2))
	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer2", 90, day(3))
	assert.NoError(t, svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 24, day(5)))

	// second acceptance after expiry must keep the true pre-override price
	assert.NoError(t, svc.AcceptBid(context.Background(), "p1", "buyer2", 90, 24, day(7)))

	p := products.products["p1"]
	assert.Equal(t, 100.0, *p.OriginalPrice)
	assert.Equal(t, 90.0, p.Price)
}

func TestAcceptBid_PartialFailureWithoutTransaction(t *testing.T) {
	products := newFakeProductRepo(testProduct())
	bids := newFakeBidRepo()
	svc := newBidService(products, bids, &fakeTxnRunner{unsupported: true})

	_, _ = svc.SubmitBid(context.Background(), "p1", "buyer1", 80, day(2))
	bids.updateErr = errors.New("write timeout")

	err := svc.AcceptBid(context.Background(), "p1", "buyer1", 80, 24, day(5))

	assert.ErrorIs(t, err, apperrors.ErrPartialAcceptance)
	// the product write went through before the bid write failed
	assert.Equal(t, 80.0, products.products["p1"].Price)
}

func TestSuggestOffers_UsesPreOverridePrice(t *testing.T) {
	product := testProduct()
	override := 80.0
	original := 100.0
	buyer := "buyer1"
	accepted := day(5)
	expires := day(6)
	product.Price = override
	product.CurrentBid = &override
	product.BuyerID = &buyer
	product.OfferAcceptedAt = &accepted
	product.OfferExpiresAt = &expires
	product.OriginalPrice = &original

	svc := newBidService(newFakeProductRepo(product), newFakeBidRepo(), &fakeTxnRunner{})

	suggestions, err := svc.SuggestOffers(context.Background(), "p1", day(1))
	assert.NoError(t, err)

	// based on the original 100, not the overridden 80
	assert.Equal(t, []float64{98, 97, 96}, suggestions)
}
