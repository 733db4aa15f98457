package models

import "time"

// Product is a marketplace listing stored in the "products" collection.
// The five offer-override fields are either all present (an accepted offer is
// in effect and Price reflects the agreed bid) or all absent.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	ImageURLs   []string  `json:"imageUrls" bson:"imageUrls"`
	SellerID    string    `json:"sellerID" bson:"sellerID"`
	CategoryID  string    `json:"categoryID" bson:"categoryID"`
	Gender      string    `json:"gender" bson:"gender"`
	Condition   string    `json:"condition" bson:"condition"`
	Size        string    `json:"size,omitempty" bson:"size,omitempty"`
	IsSold      bool      `json:"isSold,omitempty" bson:"isSold,omitempty"`
	IsRated     bool      `json:"isRated,omitempty" bson:"isRated,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`

	// Offer override fields, set on bid acceptance and cleared on expiry.
	CurrentBid      *float64   `json:"currentBid,omitempty" bson:"currentBid,omitempty"`
	BuyerID         *string    `json:"buyerID,omitempty" bson:"buyerID,omitempty"`
	OfferAcceptedAt *time.Time `json:"offerAcceptedAt,omitempty" bson:"offerAcceptedAt,omitempty"`
	OfferExpiresAt  *time.Time `json:"offerExpiresAt,omitempty" bson:"offerExpiresAt,omitempty"`
	OriginalPrice   *float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
}

// HasActiveOffer reports whether the product carries an accepted-offer
// price override.
func (p *Product) HasActiveOffer() bool {
	return p.CurrentBid != nil && p.BuyerID != nil && p.OfferAcceptedAt != nil && p.OfferExpiresAt != nil
}

// FilterOptions are the transient query parameters used to derive a catalog
// view. Zero values mean "no constraint".
type FilterOptions struct {
	CategoryID string   `form:"category"`
	Query      string   `form:"q"`
	Condition  string   `form:"condition"`
	Size       string   `form:"size"`
	Gender     string   `form:"gender"`
	MinPrice   *float64 `form:"minPrice"`
	MaxPrice   *float64 `form:"maxPrice"`
	SortKey    string   `form:"sort"`
}

// Sort keys accepted by FilterOptions.SortKey.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)
