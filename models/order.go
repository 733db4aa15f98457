package models

import "time"

// Order records a completed purchase of one or more products.
type Order struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	OrderNumber string      `json:"orderNumber" bson:"orderNumber"`
	BuyerID     string      `json:"buyerID" bson:"buyerID"`
	Items       []OrderItem `json:"items" bson:"items"`
	Total       float64     `json:"total" bson:"total"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}

// OrderItem is one purchased product with the price actually paid, which is
// the accepted-offer price when the buyer holds an active offer.
type OrderItem struct {
	ProductID string  `json:"productID" bson:"productID"`
	SellerID  string  `json:"sellerID" bson:"sellerID"`
	Price     float64 `json:"price" bson:"price"`
}

// PlaceOrderRequest is the incoming payload for checkout.
type PlaceOrderRequest struct {
	BuyerID    string   `json:"buyerID" binding:"required"`
	ProductIDs []string `json:"productIDs" binding:"required"`
}
