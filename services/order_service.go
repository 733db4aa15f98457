package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
	"go.uber.org/zap"
)

// OrderService records purchases and flips products to sold. When the buyer
// holds the product's active accepted offer, the override price is what they
// pay; everyone else pays the pre-override price.
type OrderService interface {
	PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context, buyerID string) ([]models.Order, error)
}

type orderServiceImpl struct {
	orders   repository.OrderRepo
	products repository.ProductRepo
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderRepo, products repository.ProductRepo, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	if len(req.ProductIDs) == 0 {
		return nil, apperrors.New(400, "Order must contain at least one product", nil)
	}

	now := time.Now().UTC()
	var items []models.OrderItem
	var total float64

	for _, id := range req.ProductIDs {
		product, err := s.products.FindByID(ctx, id)
		if err == repository.ErrNoDocument {
			return nil, apperrors.ErrProductNotFound
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if product.IsSold {
			return nil, apperrors.ErrProductSold
		}

		price := product.Price
		if product.HasActiveOffer() {
			if *product.BuyerID == req.BuyerID && now.Before(*product.OfferExpiresAt) {
				price = *product.CurrentBid
			} else if product.OriginalPrice != nil {
				// the discounted price is reserved for the offer holder
				price = *product.OriginalPrice
			}
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Price:     price,
		})
		total += price
	}

	order := &models.Order{
		OrderNumber: orderNumber(),
		BuyerID:     req.BuyerID,
		Items:       items,
		Total:       total,
		CreatedAt:   now,
	}
	id, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	order.ID = id

	for _, item := range items {
		if err := s.products.Update(ctx, item.ProductID, map[string]interface{}{"isSold": true}, nil); err != nil {
			s.logger.Error("Failed to mark product sold",
				zap.String("productID", item.ProductID),
				zap.String("orderID", id),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Order placed",
		zap.String("orderID", id),
		zap.String("buyerID", req.BuyerID),
		zap.Int("items", len(items)),
		zap.Float64("total", total),
	)
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	orders, err := s.orders.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return orders, nil
}

func orderNumber() string {
	return "RSQ-" + strings.ToUpper(uuid.NewString()[:8])
}
