package service

import (
	"context"
	"errors"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
)

// Errors surfaced by classifier implementations.
var (
	// ErrProvider marks a failed or timed-out call to the language
	// model provider. Callers may retry; the classifier never does.
	ErrProvider = errors.New("language model provider call failed")

	// ErrResponseParse marks provider output that could not be parsed
	// into a label from the task's label set.
	ErrResponseParse = errors.New("language model response could not be parsed")
)

// ClassificationResult represents the outcome of classifying one
// complaint.
type ClassificationResult struct {
	Classification string          `json:"classification"`
	Justification  string          `json:"justification"`
	Task           entity.TaskType `json:"classification_type"`
	Model          string          `json:"-"`
}

// Classifier classifies complaint text for the single task it is bound to.
type Classifier interface {
	// Classify runs one classification. The complaint must already be
	// validated non-empty by the caller.
	Classify(ctx context.Context, complaint string) (*ClassificationResult, error)

	// Artifact returns the artifact the classifier is bound to.
	Artifact() *entity.Artifact
}
