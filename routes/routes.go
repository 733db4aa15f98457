package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/controllers"
)

// RegisterRoutes wires every controller onto the engine.
func RegisterRoutes(
	r *gin.Engine,
	pc *controllers.ProductController,
	bc *controllers.BidController,
	cc *controllers.CategoryController,
	rc *controllers.RatingController,
	oc *controllers.OrderController,
) {
	products := r.Group("/products")
	{
		products.GET("/", pc.GetProducts)
		products.GET("/feed", pc.GetHomeFeed)
		products.GET("/top-sellers", pc.GetTopSellerFeed)
		products.GET("/category-frequency", pc.GetCategoryFrequency)
		products.GET("/:id", pc.GetProductByID)
		products.POST("/", pc.CreateProduct)
		products.PUT("/:id", pc.UpdateProduct)
		products.GET("/:id/similar", pc.GetSimilarItems)
		products.GET("/:id/seller-items", pc.GetSameSellerItems)

		products.GET("/:id/offer-suggestions", bc.GetOfferSuggestions)
		products.GET("/:id/bids", bc.GetBids)
		products.POST("/:id/bids", bc.SubmitBid)
		products.POST("/:id/bids/accept", bc.AcceptBid)
	}

	sellers := r.Group("/sellers")
	{
		sellers.GET("/:id/products", pc.GetSellerListings)
	}

	categories := r.Group("/categories")
	{
		categories.GET("/", cc.GetCategories)
		categories.POST("/", cc.CreateCategory)
	}

	ratings := r.Group("/ratings")
	{
		ratings.POST("/", rc.CreateRating)
		ratings.GET("/sellers/:id", rc.GetSellerSummary)
	}

	orders := r.Group("/orders")
	{
		orders.POST("/", oc.PlaceOrder)
		orders.GET("/", oc.GetOrders)
	}
}
