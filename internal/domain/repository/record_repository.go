package repository

import (
	"context"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
)

// LabelCount is one row of the per-label aggregate.
type LabelCount struct {
	Task           entity.TaskType `json:"task"`
	Classification string          `json:"classification"`
	Count          int64           `json:"count"`
}

// RecordRepository defines the interface for the classification audit trail
type RecordRepository interface {
	// Create persists one classification record
	Create(ctx context.Context, record *entity.ClassificationRecord) error

	// List retrieves records with pagination, newest first. An empty
	// task filters nothing.
	List(ctx context.Context, task entity.TaskType, limit, offset int) ([]*entity.ClassificationRecord, int64, error)

	// CountByLabel aggregates record counts per task and label
	CountByLabel(ctx context.Context) ([]LabelCount, error)
}
