package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahasultan/resouq-backend/controllers"
	"github.com/mahasultan/resouq-backend/database"
	"github.com/mahasultan/resouq-backend/middleware"
	"github.com/mahasultan/resouq-backend/pkg/apperrors"
	"github.com/mahasultan/resouq-backend/pkg/logger"
	"github.com/mahasultan/resouq-backend/repository"
	"github.com/mahasultan/resouq-backend/routes"
	"github.com/mahasultan/resouq-backend/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		logger.Initialize("development")
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// --- 1. Storage ---

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	ratingCache := database.NewRedisClient(cfg.RedisURL)

	// --- 2. Dependency injection ---

	productRepo := repository.NewProductRepository(database.DB)
	bidRepo := repository.NewBidRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	ratingRepo := repository.NewRatingRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	txnRunner := repository.NewMongoTxnRunner(database.MongoClient)

	expiryMonitor := services.NewExpiryMonitor(productRepo, logger.Log)
	catalog := services.NewCatalog(productRepo, categoryRepo, ratingRepo, expiryMonitor, logger.Log)

	productService := services.NewProductService(productRepo, categoryRepo, catalog, logger.Log)
	bidService := services.NewBidService(productRepo, bidRepo, txnRunner, logger.Log)
	ratingService := services.NewRatingService(ratingRepo, productRepo, ratingCache, logger.Log)
	orderService := services.NewOrderService(orderRepo, productRepo, logger.Log)

	productController := controllers.NewProductController(productService)
	bidController := controllers.NewBidController(bidService)
	categoryController := controllers.NewCategoryController(categoryRepo)
	ratingController := controllers.NewRatingController(ratingService)
	orderController := controllers.NewOrderController(orderService)

	// --- 3. Background offer sweep ---

	if err := expiryMonitor.Start(cfg.OfferSweepSpec); err != nil {
		zap.L().Fatal("Failed to schedule offer sweep", zap.Error(err))
	}
	defer expiryMonitor.Stop()

	// --- 4. HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(apperrors.ErrorMiddleware())

	// Request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, productController, bidController, categoryController, ratingController, orderController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c.Writer, apperrors.ErrNotFound)
	})

	// --- 5. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("ReSouq backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down ReSouq backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if ratingCache != nil {
		if err := ratingCache.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}

	zap.L().Info("ReSouq backend stopped gracefully")
}
