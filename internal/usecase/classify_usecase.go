package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/repository"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/infrastructure/metrics"
)

// Error definitions for classify usecase
var (
	ErrUnknownTask         = errors.New("unknown classification task")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrArtifactUnavailable = errors.New("classifier artifact unavailable")
)

// ClassifyInput represents the input for a classification request
type ClassifyInput struct {
	Complaint string `json:"complaint" binding:"required"`
}

// ClassifyOutput represents the output of a classification
type ClassifyOutput struct {
	Classification string          `json:"classification"`
	Justification  string          `json:"justification"`
	Task           entity.TaskType `json:"classification_type"`
	Cached         bool            `json:"cached,omitempty"`
}

// ClassifierFactory builds a classifier bound to a loaded artifact.
type ClassifierFactory func(artifact *entity.Artifact) service.Classifier

// ResultCache caches classification results for identical complaints.
type ResultCache interface {
	Get(ctx context.Context, key string) (*service.ClassificationResult, bool)
	Set(ctx context.Context, key string, result *service.ClassificationResult)
	Key(task entity.TaskType, model, complaint string) string
}

// ClassifyUsecase defines the interface for classification operations
type ClassifyUsecase interface {
	// Classify validates and runs one classification request
	Classify(ctx context.Context, task entity.TaskType, input *ClassifyInput, requestID string) (*ClassifyOutput, error)

	// Classifier returns the cached classifier for a task, lazily
	// loading its artifact on first access
	Classifier(task entity.TaskType) (service.Classifier, error)
}

type classifyUsecase struct {
	artifacts repository.ArtifactRepository
	records   repository.RecordRepository
	cache     ResultCache
	factory   ClassifierFactory
	logger    *zap.Logger

	mu          sync.RWMutex
	classifiers map[entity.TaskType]service.Classifier
}

// NewClassifyUsecase creates a classification usecase. records and
// cache are optional; a nil value disables the audit trail or the
// response cache respectively.
func NewClassifyUsecase(
	artifacts repository.ArtifactRepository,
	records repository.RecordRepository,
	cache ResultCache,
	factory ClassifierFactory,
	logger *zap.Logger,
) ClassifyUsecase {
	return &classifyUsecase{
		artifacts:   artifacts,
		records:     records,
		cache:       cache,
		factory:     factory,
		logger:      logger,
		classifiers: make(map[entity.TaskType]service.Classifier),
	}
}

// Classifier returns the classifier bound to a task's artifact,
// loading and caching it on first access. Once a task loads
// successfully its entry never changes for the process lifetime.
// Concurrent first accesses may both load the artifact; the first
// fully-constructed classifier to be stored wins and only complete
// entries are ever visible.
func (u *classifyUsecase) Classifier(task entity.TaskType) (service.Classifier, error) {
	if !task.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}

	u.mu.RLock()
	classifier, ok := u.classifiers[task]
	u.mu.RUnlock()
	if ok {
		return classifier, nil
	}

	artifact, err := u.artifacts.Load(task, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactUnavailable, err)
	}
	classifier = u.factory(artifact)

	u.mu.Lock()
	defer u.mu.Unlock()
	if existing, ok := u.classifiers[task]; ok {
		return existing, nil
	}
	u.classifiers[task] = classifier
	return classifier, nil
}

// Classify validates the request, consults the response cache, and
// dispatches to the task's classifier. No retries happen here; retry
// policy belongs to the caller.
func (u *classifyUsecase) Classify(ctx context.Context, task entity.TaskType, input *ClassifyInput, requestID string) (*ClassifyOutput, error) {
	classifier, err := u.Classifier(task)
	if err != nil {
		return nil, err
	}

	complaint := strings.TrimSpace(input.Complaint)
	if complaint == "" {
		return nil, fmt.Errorf("%w: complaint text must not be empty", ErrInvalidRequest)
	}

	model := classifier.Artifact().Metadata.Model

	if u.cache != nil {
		key := u.cache.Key(task, model, complaint)
		if result, ok := u.cache.Get(ctx, key); ok {
			metrics.ObserveClassification(task, result.Classification, metrics.OutcomeCacheHit, 0)
			u.record(ctx, task, complaint, result, requestID, 0, true)
			return toClassifyOutput(result, true), nil
		}
	}

	start := time.Now()
	result, err := classifier.Classify(ctx, complaint)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveClassification(task, "", outcomeForError(err), elapsed)
		return nil, err
	}
	metrics.ObserveClassification(task, result.Classification, metrics.OutcomeOK, elapsed)

	if u.cache != nil {
		u.cache.Set(ctx, u.cache.Key(task, model, complaint), result)
	}
	u.record(ctx, task, complaint, result, requestID, elapsed, false)

	return toClassifyOutput(result, false), nil
}

// record appends to the audit trail. Persistence problems are logged
// and never fail the classification.
func (u *classifyUsecase) record(ctx context.Context, task entity.TaskType, complaint string, result *service.ClassificationResult, requestID string, elapsed time.Duration, cached bool) {
	if u.records == nil {
		return
	}
	rec := entity.NewClassificationRecord(task, complaint, result.Classification, result.Justification, result.Model, requestID, elapsed, cached)
	if err := u.records.Create(ctx, rec); err != nil {
		u.logger.Warn("Failed to persist classification record",
			zap.String("task", string(task)),
			zap.Error(err))
	}
}

func toClassifyOutput(result *service.ClassificationResult, cached bool) *ClassifyOutput {
	return &ClassifyOutput{
		Classification: result.Classification,
		Justification:  result.Justification,
		Task:           result.Task,
		Cached:         cached,
	}
}

func outcomeForError(err error) string {
	switch {
	case errors.Is(err, service.ErrProvider):
		return metrics.OutcomeProviderError
	case errors.Is(err, service.ErrResponseParse):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeError
	}
}
