package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// ResultCache caches classification results in Redis so identical
// complaints skip the provider call. Cache problems are logged and
// treated as misses.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache creates a Redis-backed result cache.
func NewResultCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) usecase.ResultCache {
	return &ResultCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Key derives the cache key from everything a result depends on: the
// task, the model, and the complaint text.
func (c *ResultCache) Key(task entity.TaskType, model, complaint string) string {
	sum := sha256.Sum256([]byte(string(task) + "\x00" + model + "\x00" + complaint))
	return "triage:result:" + hex.EncodeToString(sum[:])
}

// Get looks up a cached result.
func (c *ResultCache) Get(ctx context.Context, key string) (*service.ClassificationResult, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Result cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("Result cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &service.ClassificationResult{
		Classification: cached.Classification,
		Justification:  cached.Justification,
		Task:           cached.Task,
		Model:          cached.Model,
	}, true
}

// Set stores a result under key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result *service.ClassificationResult) {
	raw, err := json.Marshal(cachedResult{
		Classification: result.Classification,
		Justification:  result.Justification,
		Task:           result.Task,
		Model:          result.Model,
	})
	if err != nil {
		c.logger.Warn("Failed to serialize cached result", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Result cache write failed", zap.Error(err))
	}
}

type cachedResult struct {
	Classification string          `json:"classification"`
	Justification  string          `json:"justification"`
	Task           entity.TaskType `json:"task"`
	Model          string          `json:"model"`
}
