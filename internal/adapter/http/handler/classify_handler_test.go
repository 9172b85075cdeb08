package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// fakeClassifyUsecase implements usecase.ClassifyUsecase for handler tests.
type fakeClassifyUsecase struct {
	output        *usecase.ClassifyOutput
	classifyErr   error
	classifierErr error
	lastTask      entity.TaskType
	lastInput     *usecase.ClassifyInput
}

func (f *fakeClassifyUsecase) Classify(_ context.Context, task entity.TaskType, input *usecase.ClassifyInput, _ string) (*usecase.ClassifyOutput, error) {
	f.lastTask = task
	f.lastInput = input
	if f.classifyErr != nil {
		return nil, f.classifyErr
	}
	return f.output, nil
}

func (f *fakeClassifyUsecase) Classifier(task entity.TaskType) (service.Classifier, error) {
	if f.classifierErr != nil {
		return nil, f.classifierErr
	}
	return nil, nil
}

func classifyRouter(uc usecase.ClassifyUsecase) *gin.Engine {
	router := gin.New()
	h := NewClassifyHandler(uc)
	router.POST("/api/v1/classify/:task", h.Classify)
	router.GET("/api/v1/tasks", h.Tasks)
	return router
}

func TestClassifyEndpoint(t *testing.T) {
	t.Run("successful classification", func(t *testing.T) {
		uc := &fakeClassifyUsecase{
			output: &usecase.ClassifyOutput{
				Classification: "Adverse Event",
				Justification:  "Reports nausea after injection.",
				Task:           entity.TaskAEPC,
			},
		}
		router := classifyRouter(uc)

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc",
			`{"complaint": "I felt nauseous after my injection."}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.TaskAEPC, uc.lastTask)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Adverse Event", data["classification"])
		assert.Equal(t, "Reports nausea after injection.", data["justification"])
		assert.Equal(t, "ae-pc", data["classification_type"])
	})

	t.Run("unknown task path is a client error", func(t *testing.T) {
		router := classifyRouter(&fakeClassifyUsecase{})

		w := performRequest(router, "POST", "/api/v1/classify/not-a-task",
			`{"complaint": "text"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UNKNOWN_TASK")
	})

	t.Run("missing body is a client error", func(t *testing.T) {
		router := classifyRouter(&fakeClassifyUsecase{})

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("missing complaint field is a client error", func(t *testing.T) {
		router := classifyRouter(&fakeClassifyUsecase{})

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("empty complaint is a client error, not a provider call", func(t *testing.T) {
		uc := &fakeClassifyUsecase{classifyErr: usecase.ErrInvalidRequest}
		router := classifyRouter(uc)

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc", `{"complaint": " "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("missing artifact maps to service unavailable", func(t *testing.T) {
		uc := &fakeClassifyUsecase{
			classifyErr: fmt.Errorf("%w: no artifact", usecase.ErrArtifactUnavailable),
		}
		router := classifyRouter(uc)

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc", `{"complaint": "text"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "optimization pipeline")
	})

	t.Run("provider failure maps to bad gateway", func(t *testing.T) {
		uc := &fakeClassifyUsecase{
			classifyErr: fmt.Errorf("%w: timeout", service.ErrProvider),
		}
		router := classifyRouter(uc)

		w := performRequest(router, "POST", "/api/v1/classify/ae-pc", `{"complaint": "text"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "PROVIDER_ERROR")
	})
}

func TestTasksEndpoint(t *testing.T) {
	router := classifyRouter(&fakeClassifyUsecase{})

	w := performRequest(router, "GET", "/api/v1/tasks", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	tasks := data["tasks"].([]interface{})
	assert.Len(t, tasks, len(entity.AllTasks))

	first := tasks[0].(map[string]interface{})
	assert.Equal(t, "ae-pc", first["task"])
	assert.NotEmpty(t, first["labels"])
}
