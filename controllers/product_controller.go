package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/services"
)

// ProductController handles HTTP requests for listings and the derived feeds.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// GetProducts handles GET /products with optional filter/sort query params.
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	opts := models.FilterOptions{
		CategoryID: ctx.Query("category"),
		Query:      ctx.Query("q"),
		Condition:  ctx.Query("condition"),
		Size:       ctx.Query("size"),
		Gender:     ctx.Query("gender"),
		SortKey:    ctx.Query("sort"),
	}
	if v := ctx.Query("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
			return
		}
		opts.MinPrice = &min
	}
	if v := ctx.Query("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
			return
		}
		opts.MaxPrice = &max
	}

	products, err := pc.productService.ListProducts(ctx.Request.Context(), opts)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProductByID handles GET /products/:id.
func (pc *ProductController) GetProductByID(ctx *gin.Context) {
	product, err := pc.productService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req services.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	product, err := pc.productService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id with a partial field map.
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		respondError(ctx, apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	if err := pc.productService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), updates); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// GetHomeFeed handles GET /products/feed.
func (pc *ProductController) GetHomeFeed(ctx *gin.Context) {
	products, err := pc.productService.HomeFeed(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetTopSellerFeed handles GET /products/top-sellers.
func (pc *ProductController) GetTopSellerFeed(ctx *gin.Context) {
	products, err := pc.productService.TopSellerFeed(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetSimilarItems handles GET /products/:id/similar.
func (pc *ProductController) GetSimilarItems(ctx *gin.Context) {
	products, err := pc.productService.SimilarItems(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetSameSellerItems handles GET /products/:id/seller-items.
func (pc *ProductController) GetSameSellerItems(ctx *gin.Context) {
	products, err := pc.productService.SameSellerItems(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetSellerListings handles GET /sellers/:id/products.
func (pc *ProductController) GetSellerListings(ctx *gin.Context) {
	products, err := pc.productService.SellerListings(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetCategoryFrequency handles GET /products/category-frequency.
func (pc *ProductController) GetCategoryFrequency(ctx *gin.Context) {
	counts, err := pc.productService.CategoryFrequency(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": counts})
}
