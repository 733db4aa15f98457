package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/services"
)

// RatingController handles HTTP requests for seller ratings.
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController.
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// CreateRating handles POST /ratings.
func (rc *RatingController) CreateRating(ctx *gin.Context) {
	var req models.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	rating, err := rc.ratingService.CreateRating(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rating)
}

// GetSellerSummary handles GET /ratings/sellers/:id.
func (rc *RatingController) GetSellerSummary(ctx *gin.Context) {
	summary, err := rc.ratingService.SellerSummary(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
