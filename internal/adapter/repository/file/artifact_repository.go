package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/repository"
)

// ArtifactRepository loads tuned prompt artifacts from a directory of
// JSON files, one per task, reconciling their recorded model
// identifier against the currently configured model.
type ArtifactRepository struct {
	dir          string
	currentModel string
	logger       *zap.Logger
	now          func() time.Time
}

// NewArtifactRepository creates a file-backed artifact repository.
// currentModel may be empty when no language model is configured, in
// which case reconciliation is skipped.
func NewArtifactRepository(dir, currentModel string, logger *zap.Logger) repository.ArtifactRepository {
	return &ArtifactRepository{
		dir:          dir,
		currentModel: currentModel,
		logger:       logger,
		now:          time.Now,
	}
}

// DefaultPath returns the conventional artifact path for a task.
func (r *ArtifactRepository) DefaultPath(task entity.TaskType) string {
	return filepath.Join(r.dir, task.ArtifactFilename())
}

// Load reads, validates, and reconciles the artifact at path.
func (r *ArtifactRepository) Load(task entity.TaskType, path string) (*entity.Artifact, error) {
	if path == "" {
		path = r.DefaultPath(task)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", entity.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	artifact, err := parseArtifact(task, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrArtifactCorrupt, path, err)
	}

	r.reconcile(artifact, path)
	return artifact, nil
}

// parseArtifact decodes and structurally validates an artifact document.
func parseArtifact(task entity.TaskType, raw []byte) (*entity.Artifact, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid JSON")
	}
	for _, field := range []string{"instructions", "demonstrations", "metadata"} {
		if !gjson.GetBytes(raw, field).Exists() {
			return nil, fmt.Errorf("missing required field %q", field)
		}
	}

	var artifact entity.Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, err
	}
	artifact.Task = task
	artifact.Raw = raw

	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// reconcile aligns the artifact's recorded model with the configured
// one. The in-memory copy is always updated; writing it back is best
// effort and a failure never propagates to the caller.
func (r *ArtifactRepository) reconcile(artifact *entity.Artifact, path string) {
	if r.currentModel == "" || artifact.Metadata.Model == r.currentModel {
		return
	}

	previous := artifact.Metadata.Model
	updatedAt := r.now().UTC()
	artifact.Metadata.Model = r.currentModel
	artifact.Metadata.UpdatedAt = &updatedAt

	updated, err := updateMetadata(artifact.Raw, r.currentModel, updatedAt)
	if err != nil {
		r.logger.Warn("Failed to serialize reconciled artifact metadata",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	artifact.Raw = updated

	if err := writeFileAtomic(path, updated); err != nil {
		r.logger.Warn("Failed to persist reconciled artifact metadata",
			zap.String("path", path),
			zap.String("previous_model", previous),
			zap.String("current_model", r.currentModel),
			zap.Error(err))
		return
	}

	r.logger.Info("Reconciled artifact model metadata",
		zap.String("path", path),
		zap.String("previous_model", previous),
		zap.String("current_model", r.currentModel))
}

// updateMetadata rewrites metadata.model and metadata.updated_at in
// place, leaving every other byte of the document untouched.
func updateMetadata(raw []byte, model string, updatedAt time.Time) ([]byte, error) {
	out, err := sjson.SetBytes(raw, "metadata.model", model)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "metadata.updated_at", updatedAt.Format(time.RFC3339))
}

// writeFileAtomic stages content in a temp file and renames it over
// the target, so the original is never left partially written.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
