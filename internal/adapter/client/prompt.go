package client

import (
	"fmt"
	"strings"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
)

// renderSystemPrompt builds the deterministic system prompt from an
// artifact's instructions, the task's label set, and the artifact's
// few-shot demonstrations. Given the same artifact the output is
// byte-identical across calls.
func renderSystemPrompt(artifact *entity.Artifact) string {
	var b strings.Builder

	b.WriteString(artifact.Instructions)
	b.WriteString("\n\n")

	b.WriteString("Respond with exactly two lines:\n")
	b.WriteString("Classification: <one of: ")
	b.WriteString(strings.Join(artifact.Task.Labels(), ", "))
	b.WriteString(">\n")
	b.WriteString("Justification: <brief explanation for the classification>\n")

	if len(artifact.Demonstrations) > 0 {
		b.WriteString("\nExamples:\n")
		for _, demo := range artifact.Demonstrations {
			b.WriteString("\nComplaint: ")
			b.WriteString(demo.Complaint)
			b.WriteString("\nClassification: ")
			b.WriteString(demo.Classification)
			if demo.Justification != "" {
				b.WriteString("\nJustification: ")
				b.WriteString(demo.Justification)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderUserPrompt builds the user message for one complaint.
func renderUserPrompt(complaint string) string {
	return "Complaint: " + complaint
}

// parseResponse extracts the label and justification from the
// provider's raw output. The label must belong to the task's label
// set; anything else is a parse error.
func parseResponse(task entity.TaskType, raw string) (label, justification string, err error) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToLower(line), "classification:"):
			if label == "" {
				label = strings.TrimSpace(line[len("classification:"):])
			}
		case strings.HasPrefix(strings.ToLower(line), "justification:"):
			if justification == "" {
				justification = strings.TrimSpace(line[len("justification:"):])
			}
		}
	}

	if label == "" {
		return "", "", fmt.Errorf("%w: no classification line in output", service.ErrResponseParse)
	}

	canonical, ok := matchLabel(task, label)
	if !ok {
		return "", "", fmt.Errorf("%w: label %q is not in the %s label set", service.ErrResponseParse, label, task)
	}
	return canonical, justification, nil
}

// matchLabel resolves raw model output against the task's label set,
// tolerating case differences and trailing punctuation.
func matchLabel(task entity.TaskType, raw string) (string, bool) {
	cleaned := strings.ToLower(strings.Trim(raw, " .\"'"))
	for _, label := range task.Labels() {
		if strings.ToLower(label) == cleaned {
			return label, true
		}
	}
	return "", false
}
