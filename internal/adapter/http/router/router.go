package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pharmatriage/classifier-api/internal/adapter/http/handler"
	"github.com/pharmatriage/classifier-api/internal/adapter/http/middleware"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// Setup creates and configures the Gin router. db and redisClient may
// be nil when the audit trail or response cache is disabled.
func Setup(classifyUC usecase.ClassifyUsecase, historyUC usecase.HistoryUsecase, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// System endpoints
	healthHandler := handler.NewHealthHandler(classifyUC, db, redisClient)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize handlers
	classifyHandler := handler.NewClassifyHandler(classifyUC)
	historyHandler := handler.NewHistoryHandler(historyUC)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/tasks", classifyHandler.Tasks)

		// One endpoint per registered task: /classify/ae-pc,
		// /classify/ae-category, /classify/pc-category.
		v1.POST("/classify/:task", classifyHandler.Classify)

		classifications := v1.Group("/classifications")
		{
			classifications.GET("", historyHandler.List)
			classifications.GET("/stats", historyHandler.Stats)
		}
	}

	return router
}
