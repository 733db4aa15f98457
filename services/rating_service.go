package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const summaryCacheTTL = 5 * time.Minute

// RatingService handles seller reviews and their aggregates. Per-seller
// summaries are cached in Redis; on a miss or Redis failure the aggregation
// runs against Mongo directly.
type RatingService interface {
	CreateRating(ctx context.Context, req models.CreateRatingRequest) (*models.Rating, error)
	SellerSummary(ctx context.Context, sellerID string) (*models.SellerRatingSummary, error)
}

type ratingServiceImpl struct {
	ratings  repository.RatingRepo
	products repository.ProductRepo
	cache    *redis.Client
	logger   *zap.Logger
}

func NewRatingService(ratings repository.RatingRepo, products repository.ProductRepo, cache *redis.Client, logger *zap.Logger) RatingService {
	return &ratingServiceImpl{
		ratings:  ratings,
		products: products,
		cache:    cache,
		logger:   logger,
	}
}

func summaryCacheKey(sellerID string) string {
	return fmt.Sprintf("rating:seller:%s", sellerID)
}

func (s *ratingServiceImpl) CreateRating(ctx context.Context, req models.CreateRatingRequest) (*models.Rating, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, apperrors.New(400, "Rating must be between 1 and 5 stars", nil)
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err == repository.ErrNoDocument {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if product.IsRated {
		return nil, apperrors.New(409, "Product has already been rated", nil)
	}

	rating := &models.Rating{
		SellerID:  product.SellerID,
		BuyerID:   req.BuyerID,
		ProductID: req.ProductID,
		Stars:     req.Stars,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.ratings.Create(ctx, rating); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if err := s.products.Update(ctx, req.ProductID, map[string]interface{}{"isRated": true}, nil); err != nil {
		s.logger.Warn("Failed to mark product rated",
			zap.String("productID", req.ProductID), zap.Error(err))
	}

	// Invalidate the seller's cached summary.
	if s.cache != nil {
		if err := s.cache.Del(ctx, summaryCacheKey(product.SellerID)).Err(); err != nil {
			s.logger.Warn("Failed to invalidate rating cache",
				zap.String("sellerID", product.SellerID), zap.Error(err))
		}
	}
	return rating, nil
}

func (s *ratingServiceImpl) SellerSummary(ctx context.Context, sellerID string) (*models.SellerRatingSummary, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, summaryCacheKey(sellerID)).Result()
		if err == nil {
			var summary models.SellerRatingSummary
			if err := json.Unmarshal([]byte(data), &summary); err == nil {
				return &summary, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("Rating cache read failed", zap.Error(err))
		}
	}

	summary, err := s.ratings.SellerSummary(ctx, sellerID)
	if err == repository.ErrNoDocument {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey(sellerID), data, summaryCacheTTL).Err(); err != nil {
				s.logger.Warn("Rating cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}
