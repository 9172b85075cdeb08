package entity

import (
	"errors"
	"time"
)

// Artifact errors surfaced by the artifact store.
var (
	ErrArtifactNotFound = errors.New("artifact file not found")
	ErrArtifactCorrupt  = errors.New("artifact file is corrupt")
)

// Demonstration is one few-shot example carried by an artifact.
type Demonstration struct {
	Complaint      string `json:"complaint"`
	Classification string `json:"classification"`
	Justification  string `json:"justification,omitempty"`
}

// ArtifactMetadata describes the model an artifact was tuned against.
type ArtifactMetadata struct {
	Model     string     `json:"model"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Artifact is a tuned prompt configuration for one classification task:
// instructions plus demonstrations produced by the optimization
// pipeline, with a metadata block recording the model it was last used
// against. Everything except metadata is immutable after creation.
type Artifact struct {
	Task           TaskType         `json:"-"`
	Instructions   string           `json:"instructions"`
	Demonstrations []Demonstration  `json:"demonstrations"`
	Metadata       ArtifactMetadata `json:"metadata"`

	// Raw holds the artifact document exactly as read from disk so
	// reconciliation can rewrite metadata without disturbing any
	// other byte.
	Raw []byte `json:"-"`
}

// Validate checks the structural invariants required to serve the
// artifact.
func (a *Artifact) Validate() error {
	if !a.Task.IsValid() {
		return errors.New("artifact bound to unregistered task type")
	}
	if a.Instructions == "" {
		return errors.New("artifact has no instructions")
	}
	if a.Demonstrations == nil {
		return errors.New("artifact has no demonstrations field")
	}
	return nil
}
