package usecase

import (
	"context"
	"fmt"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/repository"
)

// ErrHistoryDisabled is returned when the audit trail has no backing store.
var ErrHistoryDisabled = fmt.Errorf("classification history is not enabled")

// HistoryUsecase defines the interface for audit-trail queries
type HistoryUsecase interface {
	// List retrieves classification records with pagination, newest
	// first, optionally filtered by task
	List(ctx context.Context, task entity.TaskType, limit, offset int) ([]*entity.ClassificationRecord, int64, error)

	// Stats aggregates per-task, per-label record counts
	Stats(ctx context.Context) ([]repository.LabelCount, error)
}

type historyUsecase struct {
	records repository.RecordRepository
}

// NewHistoryUsecase creates a history usecase. records may be nil when
// no database is configured; queries then fail with ErrHistoryDisabled.
func NewHistoryUsecase(records repository.RecordRepository) HistoryUsecase {
	return &historyUsecase{records: records}
}

func (u *historyUsecase) List(ctx context.Context, task entity.TaskType, limit, offset int) ([]*entity.ClassificationRecord, int64, error) {
	if u.records == nil {
		return nil, 0, ErrHistoryDisabled
	}
	if task != "" && !task.IsValid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return u.records.List(ctx, task, limit, offset)
}

func (u *historyUsecase) Stats(ctx context.Context) ([]repository.LabelCount, error) {
	if u.records == nil {
		return nil, ErrHistoryDisabled
	}
	return u.records.CountByLabel(ctx)
}
