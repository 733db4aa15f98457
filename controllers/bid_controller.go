package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/services"
)

// BidController handles HTTP requests for offers and bids on a product.
type BidController struct {
	bidService services.BidService
}

// NewBidController creates a new BidController.
func NewBidController(bidService services.BidService) *BidController {
	return &BidController{bidService: bidService}
}

// GetOfferSuggestions handles GET /products/:id/offer-suggestions.
func (bc *BidController) GetOfferSuggestions(ctx *gin.Context) {
	suggestions, err := bc.bidService.SuggestOffers(ctx.Request.Context(), ctx.Param("id"), time.Now().UTC())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// SubmitBid handles POST /products/:id/bids.
func (bc *BidController) SubmitBid(ctx *gin.Context) {
	var req models.SubmitBidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	bid, err := bc.bidService.SubmitBid(ctx.Request.Context(), ctx.Param("id"), req.BidderID, req.Amount, time.Now().UTC())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, bid)
}

// GetBids handles GET /products/:id/bids, partitioned into active and
// accepted.
func (bc *BidController) GetBids(ctx *gin.Context) {
	active, accepted, err := bc.bidService.FetchBids(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"active": active, "accepted": accepted})
}

// AcceptBid handles POST /products/:id/bids/accept.
func (bc *BidController) AcceptBid(ctx *gin.Context) {
	var req models.AcceptBidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	err := bc.bidService.AcceptBid(ctx.Request.Context(), ctx.Param("id"), req.BidderID, req.Amount, req.ExpiryHours, time.Now().UTC())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Bid accepted"})
}
