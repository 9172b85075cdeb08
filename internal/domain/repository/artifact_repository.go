package repository

import (
	"github.com/pharmatriage/classifier-api/internal/domain/entity"
)

// ArtifactRepository defines the interface for artifact store access
type ArtifactRepository interface {
	// Load reads and validates the artifact for a task. When the
	// store's configured model identifier differs from the stored
	// metadata, the returned artifact carries the reconciled value;
	// persisting that reconciliation is best effort and never fails
	// the load.
	Load(task entity.TaskType, path string) (*entity.Artifact, error)

	// DefaultPath returns the conventional on-disk path for a task's
	// artifact.
	DefaultPath(task entity.TaskType) string
}
