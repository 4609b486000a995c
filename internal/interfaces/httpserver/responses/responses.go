package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/interfaces/httpserver/middlewares"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Code      string         `json:"code,omitempty"`
	Error     string         `json:"error"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// statusForCode maps engine error codes onto HTTP statuses. Unknown codes
// are treated as internal failures.
func statusForCode(code string) int {
	switch code {
	case engineErrors.ErrCodeModuleNotRegistered, engineErrors.ErrCodeLayoutNotRegistered:
		return http.StatusNotFound
	case engineErrors.ErrCodeDuplicateModule:
		return http.StatusConflict
	case engineErrors.ErrCodeInvalidSessionData, engineErrors.ErrCodeInvalidDefinition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError handles domain errors and returns appropriate HTTP responses
func HandleError(reqCtx *gin.Context, err error, message string) {
	var engineErr *engineErrors.EngineError
	if errors.As(err, &engineErr) {
		errResp := ErrorResponse{
			Code:      engineErr.Code,
			Error:     engineErr.Message,
			Message:   message,
			Details:   engineErr.Details,
			RequestID: middlewares.RequestIDFromContext(reqCtx),
		}

		reqCtx.AbortWithStatusJSON(statusForCode(engineErr.Code), errResp)
		return
	}
	// Non-engine errors
	errResp := ErrorResponse{
		Error:     err.Error(),
		Message:   message,
		RequestID: middlewares.RequestIDFromContext(reqCtx),
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleBadRequest reports a request body that failed binding or validation.
func HandleBadRequest(reqCtx *gin.Context, err error, message string) {
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:     err.Error(),
		Message:   message,
		RequestID: middlewares.RequestIDFromContext(reqCtx),
	})
}
