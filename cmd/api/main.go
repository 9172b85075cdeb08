package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pharmatriage/classifier-api/internal/adapter/client"
	"github.com/pharmatriage/classifier-api/internal/adapter/http/router"
	filerepo "github.com/pharmatriage/classifier-api/internal/adapter/repository/file"
	pgrepo "github.com/pharmatriage/classifier-api/internal/adapter/repository/postgres"
	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/repository"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/infrastructure/cache"
	"github.com/pharmatriage/classifier-api/internal/infrastructure/config"
	"github.com/pharmatriage/classifier-api/internal/infrastructure/database"
	"github.com/pharmatriage/classifier-api/internal/infrastructure/logger"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	// Resolve the language model provider. Misconfiguration here is
	// fatal; a missing artifact is not.
	provider, err := cfg.Provider.Resolve()
	if err != nil {
		log.Error("Failed to resolve provider configuration", zap.Error(err))
		return fmt.Errorf("failed to resolve provider configuration: %w", err)
	}
	log.Info("Provider configured",
		zap.String("model", provider.Model),
		zap.String("base_url", provider.BaseURL))

	llm := client.NewLLMClient(
		provider.BaseURL,
		provider.APIKey,
		provider.Model,
		cfg.Provider.MaxTokens,
		provider.Headers,
		time.Duration(cfg.Provider.TimeoutSecs)*time.Second,
	)

	artifactRepo := filerepo.NewArtifactRepository(cfg.Artifacts.Dir, provider.Model, log)

	// Initialize the audit trail database (optional, continue without it)
	var db *gorm.DB
	var recordRepo repository.RecordRepository
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Warn("Failed to connect to database, continuing without audit trail", zap.Error(err))
			db = nil
		} else if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		} else {
			log.Info("Connected to database")
			recordRepo = pgrepo.NewRecordRepository(db)
		}
	}

	// Initialize Redis response cache (optional, continue without it)
	var redisClient *redis.Client
	var resultCache usecase.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without response cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			resultCache = cache.NewResultCache(redisClient, time.Duration(cfg.Redis.TTLMinutes)*time.Minute, log)
		}
	}

	classifyUC := usecase.NewClassifyUsecase(
		artifactRepo,
		recordRepo,
		resultCache,
		func(artifact *entity.Artifact) service.Classifier {
			return client.NewPromptClassifier(artifact, llm)
		},
		log,
	)
	historyUC := usecase.NewHistoryUsecase(recordRepo)

	// Warm the classifier cache so reconciliation runs at startup and
	// missing artifacts are visible in the logs immediately.
	for _, task := range entity.AllTasks {
		if _, err := classifyUC.Classifier(task); err != nil {
			log.Warn("Classifier not available at startup",
				zap.String("task", string(task)),
				zap.Error(err))
		} else {
			log.Info("Classifier loaded", zap.String("task", string(task)))
		}
	}

	r := router.Setup(classifyUC, historyUC, db, redisClient, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(cfg.Provider.TimeoutSecs+30) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
