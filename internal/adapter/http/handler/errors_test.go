package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pharmatriage/classifier-api/internal/domain/service"
	"github.com/pharmatriage/classifier-api/internal/usecase"
)

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown task is a client error",
			err:        fmt.Errorf("%w: bogus", usecase.ErrUnknownTask),
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_TASK",
		},
		{
			name:       "invalid request is a client error",
			err:        usecase.ErrInvalidRequest,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "missing artifact is service unavailable",
			err:        fmt.Errorf("%w: file missing", usecase.ErrArtifactUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "ARTIFACT_UNAVAILABLE",
		},
		{
			name:       "provider failure is a bad gateway",
			err:        fmt.Errorf("%w: timeout", service.ErrProvider),
			wantStatus: http.StatusBadGateway,
			wantCode:   "PROVIDER_ERROR",
		},
		{
			name:       "unparseable output is a server error",
			err:        fmt.Errorf("%w: label", service.ErrResponseParse),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "RESPONSE_PARSE_ERROR",
		},
		{
			name:       "history disabled is not implemented",
			err:        usecase.ErrHistoryDisabled,
			wantStatus: http.StatusNotImplemented,
			wantCode:   "HISTORY_DISABLED",
		},
		{
			name:       "anything else is internal",
			err:        errors.New("surprise"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := MapUsecaseError(tt.err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestArtifactUnavailableGuidance(t *testing.T) {
	// The 503 must tell the operator what to do, not just what broke.
	resp := MapUsecaseError(usecase.ErrArtifactUnavailable)
	assert.Contains(t, resp.Message, "optimization pipeline")
}
