package client

import (
	"context"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
)

// CompletionClient is the provider surface PromptClassifier depends on.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// PromptClassifier binds one task's artifact to a completion client
// and implements the Classifier interface by rendering the artifact
// into a prompt and parsing the provider's reply.
type PromptClassifier struct {
	artifact *entity.Artifact
	llm      CompletionClient
	system   string
}

// NewPromptClassifier creates a classifier bound to the given artifact.
// The system prompt is rendered once so repeated calls stay
// deterministic and cheap.
func NewPromptClassifier(artifact *entity.Artifact, llm CompletionClient) service.Classifier {
	return &PromptClassifier{
		artifact: artifact,
		llm:      llm,
		system:   renderSystemPrompt(artifact),
	}
}

// Classify runs one complaint through the provider.
func (c *PromptClassifier) Classify(ctx context.Context, complaint string) (*service.ClassificationResult, error) {
	raw, err := c.llm.Complete(ctx, c.system, renderUserPrompt(complaint))
	if err != nil {
		return nil, err
	}

	label, justification, err := parseResponse(c.artifact.Task, raw)
	if err != nil {
		return nil, err
	}

	return &service.ClassificationResult{
		Classification: label,
		Justification:  justification,
		Task:           c.artifact.Task,
		Model:          c.llm.Model(),
	}, nil
}

// Artifact returns the bound artifact.
func (c *PromptClassifier) Artifact() *entity.Artifact {
	return c.artifact
}
