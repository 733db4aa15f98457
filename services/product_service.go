package services

import (
	"context"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"go.uber.org/zap"
)

// CreateProductRequest carries the fields a seller supplies for a new listing.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
	SellerID    string   `json:"sellerID" binding:"required"`
	CategoryID  string   `json:"categoryID" binding:"required"`
	Gender      string   `json:"gender"`
	Condition   string   `json:"condition"`
	Size        string   `json:"size"`
}

// ProductService serves listing CRUD and the derived catalog views.
type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) error
	ListProducts(ctx context.Context, opts models.FilterOptions) ([]models.Product, error)
	HomeFeed(ctx context.Context) ([]models.Product, error)
	TopSellerFeed(ctx context.Context) ([]models.Product, error)
	SimilarItems(ctx context.Context, productID string) ([]models.Product, error)
	SameSellerItems(ctx context.Context, productID string) ([]models.Product, error)
	SellerListings(ctx context.Context, sellerID string) ([]models.Product, error)
	CategoryFrequency(ctx context.Context) ([]models.CategoryCount, error)
}

type productServiceImpl struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	catalog    *Catalog
	logger     *zap.Logger
}

func NewProductService(products repository.ProductRepo, categories repository.CategoryRepo, catalog *Catalog, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		products:   products,
		categories: categories,
		catalog:    catalog,
		logger:     logger,
	}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		if err == repository.ErrNoDocument {
			return nil, apperrors.New(400, "Unknown category", nil)
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		SellerID:    req.SellerID,
		CategoryID:  req.CategoryID,
		Gender:      req.Gender,
		Condition:   req.Condition,
		Size:        req.Size,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	product.ID = id

	s.logger.Info("Listing created",
		zap.String("productID", id),
		zap.String("sellerID", req.SellerID),
	)
	return product, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err == repository.ErrNoDocument {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return apperrors.New(400, "No update fields provided", nil)
	}
	// Identity and offer-override state are not editable through here.
	delete(updates, "_id")
	for _, f := range []string{"currentBid", "buyerID", "offerAcceptedAt", "offerExpiresAt", "originalPrice"} {
		delete(updates, f)
	}

	err := s.products.Update(ctx, id, updates, nil)
	if err == repository.ErrNoDocument {
		return apperrors.ErrProductNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}

// ListProducts refreshes the catalog mirror, then derives a filtered and
// sorted view from it.
func (s *productServiceImpl) ListProducts(ctx context.Context, opts models.FilterOptions) ([]models.Product, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	filtered := FilterProducts(s.catalog.Products(), opts, s.catalog.Categories())
	if opts.SortKey != "" {
		return SortProducts(filtered, opts.SortKey), nil
	}
	return SortByAvailabilityThenDate(filtered), nil
}

func (s *productServiceImpl) HomeFeed(ctx context.Context) ([]models.Product, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	return SortByAvailabilityThenDate(s.catalog.Products()), nil
}

func (s *productServiceImpl) TopSellerFeed(ctx context.Context) ([]models.Product, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	feed := SortByAvailabilityThenDate(s.catalog.Products())
	return TopSellerProducts(feed, s.catalog.SellerSummaries(), TopSellerThreshold), nil
}

func (s *productServiceImpl) SimilarItems(ctx context.Context, productID string) ([]models.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return SimilarItems(*product, s.catalog.Products(), relatedItemsLimit), nil
}

func (s *productServiceImpl) SameSellerItems(ctx context.Context, productID string) ([]models.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return SameSellerItems(*product, s.catalog.Products(), relatedItemsLimit), nil
}

// SellerListings returns everything a seller has listed, sold items last.
func (s *productServiceImpl) SellerListings(ctx context.Context, sellerID string) ([]models.Product, error) {
	products, err := s.products.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return SortByAvailabilityThenDate(products), nil
}

func (s *productServiceImpl) CategoryFrequency(ctx context.Context) ([]models.CategoryCount, error) {
	if err := s.catalog.Refresh(ctx); err != nil {
		return nil, err
	}
	return CategoryFrequency(s.catalog.Products(), s.catalog.Categories()), nil
}
