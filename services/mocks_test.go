package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/repository"
)

// ---- fake product repo ----

type fakeProductRepo struct {
	products  map[string]*models.Product
	findErr   error
	updateErr error
	updates   int
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProductRepo) FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	all, err := f.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	for _, p := range all {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindWithActiveOffers(ctx context.Context) ([]models.Product, error) {
	all, err := f.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	for _, p := range all {
		if p.OfferExpiresAt != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) (string, error) {
	if product.ID == "" {
		product.ID = "generated-id"
	}
	copied := *product
	f.products[product.ID] = &copied
	return product.ID, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, set map[string]interface{}, unset []string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNoDocument
	}
	f.updates++
	for field, value := range set {
		switch field {
		case "price":
			p.Price = value.(float64)
		case "currentBid":
			v := value.(float64)
			p.CurrentBid = &v
		case "buyerID":
			v := value.(string)
			p.BuyerID = &v
		case "offerAcceptedAt":
			v := value.(time.Time)
			p.OfferAcceptedAt = &v
		case "offerExpiresAt":
			v := value.(time.Time)
			p.OfferExpiresAt = &v
		case "originalPrice":
			v := value.(float64)
			p.OriginalPrice = &v
		case "isSold":
			p.IsSold = value.(bool)
		case "isRated":
			p.IsRated = value.(bool)
		}
	}
	for _, field := range unset {
		switch field {
		case "currentBid":
			p.CurrentBid = nil
		case "buyerID":
			p.BuyerID = nil
		case "offerAcceptedAt":
			p.OfferAcceptedAt = nil
		case "offerExpiresAt":
			p.OfferExpiresAt = nil
		case "originalPrice":
			p.OriginalPrice = nil
		}
	}
	return nil
}

// ---- fake bid repo ----

type fakeBidRepo struct {
	bids      map[string]*models.Bid
	updateErr error
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[string]*models.Bid)}
}

func bidKey(productID, bidderID string) string {
	return productID + ":" + bidderID
}

func (f *fakeBidRepo) Upsert(_ context.Context, bid *models.Bid) error {
	bid.ID = bidKey(bid.ProductID, bid.BidderID)
	copied := *bid
	f.bids[bid.ID] = &copied
	return nil
}

func (f *fakeBidRepo) FindOne(_ context.Context, productID, bidderID string) (*models.Bid, error) {
	b, ok := f.bids[bidKey(productID, bidderID)]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBidRepo) FindByProduct(_ context.Context, productID string) ([]models.Bid, error) {
	var out []models.Bid
	for _, b := range f.bids {
		if b.ProductID == productID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeBidRepo) FindAccepted(ctx context.Context, productID string) ([]models.Bid, error) {
	all, err := f.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var out []models.Bid
	for _, b := range all {
		if b.Status == models.BidStatusAccepted {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBidRepo) Update(_ context.Context, productID, bidderID string, set map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	b, ok := f.bids[bidKey(productID, bidderID)]
	if !ok {
		return repository.ErrNoDocument
	}
	for field, value := range set {
		switch field {
		case "status":
			b.Status = value.(string)
		case "acceptedAt":
			v := value.(time.Time)
			b.AcceptedAt = &v
		case "expiryDurationHours":
			v := value.(int)
			b.ExpiryDurationHours = &v
		case "expiresAt":
			v := value.(time.Time)
			b.ExpiresAt = &v
		}
	}
	return nil
}

// ---- fake category / rating repos ----

type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, repository.ErrNoDocument
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) (string, error) {
	if category.ID == "" {
		category.ID = "generated-id"
	}
	f.categories = append(f.categories, *category)
	return category.ID, nil
}

type fakeRatingRepo struct {
	summaries []models.SellerRatingSummary
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *models.Rating) (string, error) {
	rating.ID = "generated-id"
	return rating.ID, nil
}

func (f *fakeRatingRepo) SellerSummaries(_ context.Context) ([]models.SellerRatingSummary, error) {
	return append([]models.SellerRatingSummary(nil), f.summaries...), nil
}

func (f *fakeRatingRepo) SellerSummary(_ context.Context, sellerID string) (*models.SellerRatingSummary, error) {
	for _, s := range f.summaries {
		if s.SellerID == sellerID {
			copied := s
			return &copied, nil
		}
	}
	return nil, repository.ErrNoDocument
}

// ---- fake orders repo ----

type fakeOrderRepo struct {
	orders []models.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) (string, error) {
	if order.ID == "" {
		order.ID = "order-id"
	}
	f.orders = append(f.orders, *order)
	return order.ID, nil
}

func (f *fakeOrderRepo) FindByBuyer(_ context.Context, buyerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ---- fake txn runner ----

type fakeTxnRunner struct {
	unsupported bool
}

func (f *fakeTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.unsupported {
		return repository.ErrTxnUnsupported
	}
	return fn(ctx)
}
