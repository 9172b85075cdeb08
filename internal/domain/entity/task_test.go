package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskType(t *testing.T) {
	t.Run("accepts registered tasks", func(t *testing.T) {
		for _, raw := range []string{"ae-pc", "ae-category", "pc-category"} {
			task, ok := ParseTaskType(raw)
			assert.True(t, ok)
			assert.True(t, task.IsValid())
			assert.Equal(t, raw, string(task))
		}
	})

	t.Run("rejects unregistered identifiers", func(t *testing.T) {
		for _, raw := range []string{"", "ae", "AE-PC", "unknown-task"} {
			_, ok := ParseTaskType(raw)
			assert.False(t, ok, "expected %q to be rejected", raw)
		}
	})
}

func TestTaskLabels(t *testing.T) {
	t.Run("ae-pc has the binary label set", func(t *testing.T) {
		assert.Equal(t, []string{"Adverse Event", "Product Complaint"}, TaskAEPC.Labels())
	})

	t.Run("every task has labels and a description", func(t *testing.T) {
		for _, task := range AllTasks {
			assert.NotEmpty(t, task.Labels())
			assert.NotEmpty(t, task.Description())
		}
	})
}

func TestArtifactFilename(t *testing.T) {
	assert.Equal(t, "ae-pc_classifier_optimized.json", TaskAEPC.ArtifactFilename())
	assert.Equal(t, "pc-category_classifier_optimized.json", TaskPCCategory.ArtifactFilename())
}
