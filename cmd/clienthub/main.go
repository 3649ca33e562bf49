package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/config"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/handler"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/middleware"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/service"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting clienthub pricing service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.SKU{},
		&entity.RateSheet{},
		&entity.RateSheetItem{},
		&entity.Client{},
		&entity.Community{},
		&entity.CommunityProductOverride{},
		&entity.PriceBook{},
		&entity.PriceBookItem{},
		&entity.ClientPriceBookAssignment{},
		&entity.BusinessUnit{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// The SKU cache degrades to the store, so a missing redis only
		// costs latency.
		zapLogger.Warn("Redis unavailable, continuing without SKU cache", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, zapLogger, cfg.Pricing.ReadTimeout)
	handlers := handler.NewHandlers(services)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": Version})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/pricing/resolve", handlers.Pricing.ResolvePrice)

		api.GET("/skus", handlers.Catalog.ListSKUs)
		api.POST("/skus", handlers.Catalog.CreateSKU)
		api.GET("/skus/:id", handlers.Catalog.GetSKU)
		api.PUT("/skus/:id", handlers.Catalog.UpdateSKU)
		api.DELETE("/skus/:id", handlers.Catalog.DeactivateSKU)

		api.GET("/rate-sheets", handlers.RateSheet.ListRateSheets)
		api.POST("/rate-sheets", handlers.RateSheet.CreateRateSheet)
		api.GET("/rate-sheets/:id", handlers.RateSheet.GetRateSheet)
		api.PUT("/rate-sheets/:id", handlers.RateSheet.UpdateRateSheet)
		api.DELETE("/rate-sheets/:id", handlers.RateSheet.DeleteRateSheet)
		api.GET("/rate-sheets/:id/items", handlers.RateSheet.ListItems)
		api.PUT("/rate-sheets/:id/items", handlers.RateSheet.UpsertItem)
		api.DELETE("/rate-sheets/:id/items/:skuId", handlers.RateSheet.DeleteItem)
		api.GET("/rate-sheets/:id/items/export", handlers.RateSheet.ExportItems)
		api.POST("/rate-sheets/:id/items/import", handlers.RateSheet.ImportItems)

		api.POST("/communities", handlers.Community.CreateCommunity)
		api.GET("/communities/:id", handlers.Community.GetCommunity)
		api.PUT("/communities/:id/rate-sheet", handlers.Community.SetRateSheetOverride)
		api.GET("/communities/:id/overrides", handlers.Community.ListOverrides)
		api.PUT("/communities/:id/overrides", handlers.Community.UpsertOverride)
		api.DELETE("/communities/:id/overrides/:skuId", handlers.Community.DeleteOverride)

		api.GET("/price-books", handlers.PriceBook.ListPriceBooks)
		api.POST("/price-books", handlers.PriceBook.CreatePriceBook)
		api.GET("/price-books/:id", handlers.PriceBook.GetPriceBook)
		api.POST("/price-books/:id/items", handlers.PriceBook.AddItem)
		api.DELETE("/price-books/:id/items/:skuId", handlers.PriceBook.RemoveItem)
		api.GET("/clients/:id/communities", handlers.Community.ListCommunities)
		api.GET("/clients/:id/price-book-assignments", handlers.PriceBook.ListAssignments)
		api.POST("/clients/:id/price-book-assignments", handlers.PriceBook.CreateAssignment)
		api.DELETE("/price-book-assignments/:id", handlers.PriceBook.DeleteAssignment)

		api.GET("/business-units", handlers.BusinessUnit.ListBusinessUnits)
		api.POST("/business-units", handlers.BusinessUnit.CreateBusinessUnit)
		api.GET("/business-units/:id", handlers.BusinessUnit.GetBusinessUnit)
		api.PUT("/business-units/:id/default-rate-sheet", handlers.BusinessUnit.SetDefaultRateSheet)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
