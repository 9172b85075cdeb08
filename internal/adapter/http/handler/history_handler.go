package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmatriage/classifier-api/internal/domain/entity"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// HistoryHandler handles audit-trail HTTP requests
type HistoryHandler struct {
	historyUC usecase.HistoryUsecase
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyUC usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List handles GET /api/v1/classifications
func (h *HistoryHandler) List(c *gin.Context) {
	var task entity.TaskType
	if raw := c.Query("task"); raw != "" {
		parsed, ok := entity.ParseTaskType(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "UNKNOWN_TASK", "unknown classification task: "+raw)
			return
		}
		task = parsed
	}

	page := ParsePagination(c)
	records, total, err := h.historyUC.List(c.Request.Context(), task, page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"records":  records,
		"total":    total,
		"limit":    page.Limit,
		"offset":   page.Offset,
		"has_more": int64(page.Offset+page.Limit) < total,
	})
}

// Stats handles GET /api/v1/classifications/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	counts, err := h.historyUC.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"counts": counts})
}
