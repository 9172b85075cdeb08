package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses. The
// mapping distinguishes bad input (4xx) from missing deployment state
// (503) from upstream provider trouble (502).
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrUnknownTask):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "UNKNOWN_TASK",
			Message:    "unknown classification task",
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "complaint text must not be empty",
		}
	case errors.Is(err, usecase.ErrArtifactUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "ARTIFACT_UNAVAILABLE",
			Message:    "classifier artifact not loaded; run the optimization pipeline or ensure the artifact exists in the artifacts directory",
		}
	case errors.Is(err, usecase.ErrHistoryDisabled):
		return ErrorResponse{
			StatusCode: http.StatusNotImplemented,
			Code:       "HISTORY_DISABLED",
			Message:    "classification history requires a configured database",
		}
	case errors.Is(err, service.ErrProvider):
		return ErrorResponse{
			StatusCode: http.StatusBadGateway,
			Code:       "PROVIDER_ERROR",
			Message:    "language model provider call failed; retry later",
		}
	case errors.Is(err, service.ErrResponseParse):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "RESPONSE_PARSE_ERROR",
			Message:    "language model output did not match the expected label set",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate
// HTTP response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
