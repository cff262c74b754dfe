package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/kingoftech-v01/shop-backend/config"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/internal/app/service"
	"github.com/kingoftech-v01/shop-backend/internal/db"
	"github.com/kingoftech-v01/shop-backend/internal/scheduler"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/kingoftech-v01/shop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		EnableColor: cfg.App.Environment == "development",
	})

	logger.Info("Starting shop backend worker", map[string]interface{}{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	discountRepo := repository.NewDiscountRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())

	// Initialize services
	discountService := service.NewDiscountService(discountRepo, productRepo, categoryRepo, db.GetDB())

	// Start the discount cache scheduler
	discountScheduler := scheduler.NewDiscountScheduler(discountService, cfg.App.DiscountCacheSpec)
	if err := discountScheduler.Start(); err != nil {
		logger.Fatal("Failed to start discount scheduler", err)
	}

	logger.Info("Worker started successfully", map[string]interface{}{
		"pid": os.Getpid(),
	})

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker gracefully...")
	discountScheduler.Stop()
	logger.Info("Worker stopped successfully")
}
