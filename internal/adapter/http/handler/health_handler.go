package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// ServiceInfo describes the running service on the root endpoint.
var ServiceInfo = gin.H{
	"name":    "Complaint Triage Classifier API",
	"version": "0.2.0",
	"health":  "/health",
	"metrics": "/metrics",
	"tasks":   "/api/v1/tasks",
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	classifyUC usecase.ClassifyUsecase
	db         *gorm.DB
	redis      *redis.Client
}

// NewHealthHandler creates a new health handler. db and redis are
// optional dependencies and may be nil.
func NewHealthHandler(classifyUC usecase.ClassifyUsecase, db *gorm.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		classifyUC: classifyUC,
		db:         db,
		redis:      redis,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo)
}

// Health handles GET /health. A missing artifact degrades the service
// but does not make it unhealthy: the operator needs to run the
// optimization pipeline, not restart the process.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true
	degraded := false

	for _, task := range entity.AllTasks {
		key := "artifact:" + string(task)
		if _, err := h.classifyUC.Classifier(task); err != nil {
			if errors.Is(err, usecase.ErrArtifactUnavailable) {
				components[key] = "missing: run the optimization pipeline"
				degraded = true
			} else {
				components[key] = "error: " + err.Error()
				healthy = false
			}
			continue
		}
		components[key] = "ok"
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			components["database"] = "error: " + err.Error()
			healthy = false
		} else if err := sqlDB.PingContext(ctx); err != nil {
			components["database"] = "error: " + err.Error()
			healthy = false
		} else {
			components["database"] = "ok"
		}
	} else {
		components["database"] = "not configured"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case !healthy:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready. The service is ready once at least one
// task's artifact can be served.
func (h *HealthHandler) Ready(c *gin.Context) {
	for _, task := range entity.AllTasks {
		if _, err := h.classifyUC.Classifier(task); err == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
	}

	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "not ready",
		"reason": "no classifier artifact could be loaded; run the optimization pipeline",
	})
}
