package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/repository"
)

// CategoryController handles HTTP requests for listing categories.
type CategoryController struct {
	categories repository.CategoryRepo
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(categories repository.CategoryRepo) *CategoryController {
	return &CategoryController{categories: categories}
}

// GetCategories handles GET /categories.
func (cc *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := cc.categories.FindAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /categories.
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}
	if category.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	id, err := cc.categories.Create(ctx.Request.Context(), &category)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	category.ID = id
	ctx.JSON(http.StatusCreated, category)
}
