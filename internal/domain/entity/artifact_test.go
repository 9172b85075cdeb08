package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactValidate(t *testing.T) {
	valid := func() *Artifact {
		return &Artifact{
			Task:           TaskAEPC,
			Instructions:   "Classify the complaint.",
			Demonstrations: []Demonstration{},
			Metadata:       ArtifactMetadata{Model: "model-a"},
		}
	}

	t.Run("valid artifact passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unregistered task fails", func(t *testing.T) {
		a := valid()
		a.Task = TaskType("bogus")
		assert.Error(t, a.Validate())
	})

	t.Run("empty instructions fail", func(t *testing.T) {
		a := valid()
		a.Instructions = ""
		assert.Error(t, a.Validate())
	})

	t.Run("nil demonstrations fail", func(t *testing.T) {
		a := valid()
		a.Demonstrations = nil
		assert.Error(t, a.Validate())
	})

	t.Run("empty demonstrations are allowed", func(t *testing.T) {
		a := valid()
		a.Demonstrations = []Demonstration{}
		assert.NoError(t, a.Validate())
	})
}
