package models

import "time"

// Rating is a buyer's 1-5 star review of a seller after a purchase.
type Rating struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SellerID  string    `json:"sellerID" bson:"sellerID"`
	BuyerID   string    `json:"buyerID" bson:"buyerID"`
	ProductID string    `json:"productID" bson:"productID"`
	Stars     int       `json:"stars" bson:"stars"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// SellerRatingSummary is the aggregate rating for one seller.
type SellerRatingSummary struct {
	SellerID string  `json:"sellerID" bson:"_id"`
	Average  float64 `json:"average" bson:"average"`
	Count    int64   `json:"count" bson:"count"`
}

// CreateRatingRequest is the incoming payload for rating a seller.
type CreateRatingRequest struct {
	BuyerID   string `json:"buyerID" binding:"required"`
	ProductID string `json:"productID" binding:"required"`
	Stars     int    `json:"stars" binding:"required"`
	Comment   string `json:"comment"`
}
