package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/repository"
)

// RecordRepository implements repository.RecordRepository using GORM
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *gorm.DB) repository.RecordRepository {
	return &RecordRepository{db: db}
}

// Create persists one classification record
func (r *RecordRepository) Create(ctx context.Context, record *entity.ClassificationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List retrieves records with pagination, newest first
func (r *RecordRepository) List(ctx context.Context, task entity.TaskType, limit, offset int) ([]*entity.ClassificationRecord, int64, error) {
	var records []*entity.ClassificationRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ClassificationRecord{})
	if task != "" {
		query = query.Where("task = ?", task)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountByLabel aggregates record counts per task and label
func (r *RecordRepository) CountByLabel(ctx context.Context) ([]repository.LabelCount, error) {
	var counts []repository.LabelCount

	err := r.db.WithContext(ctx).
		Model(&entity.ClassificationRecord{}).
		Select("task, classification, COUNT(*) as count").
		Group("task, classification").
		Order("task, count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return counts, nil
}
