package main

import (
	"context"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/adapter/httpapi"
	natsadapter "github.com/recircle/marketplace/internal/adapter/messaging/nats"
	"github.com/recircle/marketplace/internal/adapter/repository/cache"
	"github.com/recircle/marketplace/internal/adapter/repository/mongodb"
	"github.com/recircle/marketplace/internal/adapter/storage/s3"
	"github.com/recircle/marketplace/internal/catalog/session"
	"github.com/recircle/marketplace/internal/catalog/usecase"
	"github.com/recircle/marketplace/internal/config"
	"github.com/recircle/marketplace/internal/mailer"
	"github.com/recircle/marketplace/internal/platform/logger"
	"github.com/recircle/marketplace/internal/platform/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	listingStore := mongodb.NewListingRepository(db, appLogger)

	blobStore, err := s3.NewS3Storage(
		cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey,
		cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	publisher, err := natsadapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	// The catalog cache is best-effort; run without it if Redis is down.
	var catalogCache usecase.CatalogCache
	if redisCache, err := cache.NewCatalogCache(cfg.RedisAddress, appLogger); err != nil {
		appLogger.Warn("Redis unavailable, running without catalog cache", zap.Error(err))
	} else {
		catalogCache = redisCache
	}

	var notifier usecase.Notifier
	if cfg.SMTPEmail != "" && cfg.NotifyEmail != "" {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, cfg.NotifyEmail)
	}

	metricsManager := metrics.NewManager("recircle")
	go func() {
		if err := metrics.StartServer(cfg.MetricsPort, appLogger, metricsManager.Registry); err != nil && err != http.ErrServerClosed {
			appLogger.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	catalogUC := usecase.NewCatalogUsecase(listingStore, catalogCache, appLogger)
	postUC := usecase.NewPostUsecase(
		listingStore, blobStore, catalogUC, publisher, notifier,
		metricsManager.ListingsCreatedTotal, cfg.PlaceholderImageURL, appLogger,
	)
	favoriteUC := usecase.NewFavoriteUsecase(appLogger)
	sess := session.New()

	// Initial load runs in the background; queries report "loading" until it
	// completes.
	go func() {
		if err := catalogUC.Refresh(context.Background()); err != nil {
			appLogger.Warn("initial catalog load failed", zap.Error(err))
		}
	}()

	handler := httpapi.NewHandler(catalogUC, postUC, favoriteUC, sess, appLogger)
	router := httpapi.NewRouter(handler, appLogger, metricsManager)

	addr := ":" + cfg.HTTPPort
	appLogger.Info("HTTP server starting", zap.String("address", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatal("HTTP server failed", zap.Error(err))
	}
}
