package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// ClassifyHandler handles classification HTTP requests
type ClassifyHandler struct {
	classifyUC usecase.ClassifyUsecase
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(classifyUC usecase.ClassifyUsecase) *ClassifyHandler {
	return &ClassifyHandler{classifyUC: classifyUC}
}

// Classify handles POST /api/v1/classify/:task
func (h *ClassifyHandler) Classify(c *gin.Context) {
	task, ok := ExtractTaskParam(c, "task")
	if !ok {
		respondError(c, http.StatusBadRequest, "UNKNOWN_TASK", "unknown classification task: "+c.Param("task"))
		return
	}
	h.classify(c, task)
}

func (h *ClassifyHandler) classify(c *gin.Context, task entity.TaskType) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.classifyUC.Classify(c.Request.Context(), task, &input, c.GetString("request_id"))
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Tasks handles GET /api/v1/tasks
func (h *ClassifyHandler) Tasks(c *gin.Context) {
	tasks := make([]gin.H, 0, len(entity.AllTasks))
	for _, task := range entity.AllTasks {
		tasks = append(tasks, gin.H{
			"task":        task,
			"description": task.Description(),
			"labels":      task.Labels(),
		})
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}
