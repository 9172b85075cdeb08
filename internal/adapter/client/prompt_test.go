package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
)

func testArtifact() *entity.Artifact {
	return &entity.Artifact{
		Task:         entity.TaskAEPC,
		Instructions: "Classify Ozempic-related complaints as Adverse Event or Product Complaint.",
		Demonstrations: []entity.Demonstration{
			{
				Complaint:      "The pen arrived with a cracked cartridge and leaked everywhere.",
				Classification: "Product Complaint",
				Justification:  "Defective device, no patient harm reported.",
			},
			{
				Complaint:      "I experienced severe nausea and vomiting after my injection.",
				Classification: "Adverse Event",
			},
		},
		Metadata: entity.ArtifactMetadata{Model: "model-a"},
	}
}

func TestRenderSystemPrompt(t *testing.T) {
	t.Run("contains instructions, labels, and demonstrations", func(t *testing.T) {
		prompt := renderSystemPrompt(testArtifact())

		assert.Contains(t, prompt, "Classify Ozempic-related complaints")
		assert.Contains(t, prompt, "Adverse Event, Product Complaint")
		assert.Contains(t, prompt, "cracked cartridge")
		assert.Contains(t, prompt, "Justification: Defective device, no patient harm reported.")
	})

	t.Run("is deterministic for the same artifact", func(t *testing.T) {
		artifact := testArtifact()
		assert.Equal(t, renderSystemPrompt(artifact), renderSystemPrompt(artifact))
	})

	t.Run("omits the examples section without demonstrations", func(t *testing.T) {
		artifact := testArtifact()
		artifact.Demonstrations = []entity.Demonstration{}
		prompt := renderSystemPrompt(artifact)
		assert.NotContains(t, prompt, "Examples:")
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("parses the two-line format", func(t *testing.T) {
		label, justification, err := parseResponse(entity.TaskAEPC,
			"Classification: Adverse Event\nJustification: Reports nausea after injection.")

		require.NoError(t, err)
		assert.Equal(t, "Adverse Event", label)
		assert.Equal(t, "Reports nausea after injection.", justification)
	})

	t.Run("tolerates case and trailing punctuation", func(t *testing.T) {
		label, _, err := parseResponse(entity.TaskAEPC,
			"classification: adverse event.\njustification: because")

		require.NoError(t, err)
		assert.Equal(t, "Adverse Event", label)
	})

	t.Run("tolerates surrounding chatter", func(t *testing.T) {
		raw := strings.Join([]string{
			"Sure, here is the result:",
			"Classification: Product Complaint",
			"Justification: The device leaked.",
			"Let me know if you need anything else.",
		}, "\n")

		label, justification, err := parseResponse(entity.TaskAEPC, raw)
		require.NoError(t, err)
		assert.Equal(t, "Product Complaint", label)
		assert.Equal(t, "The device leaked.", justification)
	})

	t.Run("unknown label is a parse error", func(t *testing.T) {
		_, _, err := parseResponse(entity.TaskAEPC,
			"Classification: Maybe Serious\nJustification: unclear")
		assert.ErrorIs(t, err, service.ErrResponseParse)
	})

	t.Run("label from another task's set is a parse error", func(t *testing.T) {
		_, _, err := parseResponse(entity.TaskAEPC,
			"Classification: Gastrointestinal\nJustification: nausea")
		assert.ErrorIs(t, err, service.ErrResponseParse)
	})

	t.Run("missing classification line is a parse error", func(t *testing.T) {
		_, _, err := parseResponse(entity.TaskAEPC, "I think this is an adverse event.")
		assert.ErrorIs(t, err, service.ErrResponseParse)
	})

	t.Run("missing justification is allowed", func(t *testing.T) {
		label, justification, err := parseResponse(entity.TaskAEPC, "Classification: Adverse Event")
		require.NoError(t, err)
		assert.Equal(t, "Adverse Event", label)
		assert.Empty(t, justification)
	})
}
