package models

import "time"

// Bid statuses. A bid never moves back from accepted; offer expiry clears the
// product's override fields but keeps the bid record for history.
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
)

// Bid is a buyer's offer on a product. At most one bid exists per
// (product, bidder) pair; resubmitting while pending overwrites it.
type Bid struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProductID string    `json:"productID" bson:"productID"`
	BidderID  string    `json:"bidderID" bson:"bidderID"`
	Amount    float64   `json:"amount" bson:"amount"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Status    string    `json:"status" bson:"status"`

	// Set when the seller accepts the bid.
	AcceptedAt          *time.Time `json:"acceptedAt,omitempty" bson:"acceptedAt,omitempty"`
	ExpiryDurationHours *int       `json:"expiryDurationHours,omitempty" bson:"expiryDurationHours,omitempty"`
	ExpiresAt           *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
}

// SubmitBidRequest is the incoming payload for placing a bid.
type SubmitBidRequest struct {
	BidderID string  `json:"bidderID" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
}

// AcceptBidRequest is the incoming payload for accepting a bid.
type AcceptBidRequest struct {
	BidderID    string  `json:"bidderID" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	ExpiryHours int     `json:"expiryHours" binding:"required"`
}
