package handlers

import (
	"errors"
	"net/http"

	"ecoatlas/internal/middleware"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
)

// HandleAppError converts any error into the failure envelope. Errors that are
// not AppErrors are treated as internal failures.
func HandleAppError(c *gin.Context, err error) {
	var appErr *contextutils.AppError
	if !errors.As(err, &appErr) {
		appErr = contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeInternalError,
			contextutils.SeverityError,
			contextutils.ErrInternalError.Message,
			err.Error(),
			err,
		)
	}
	middleware.AbortWithError(c, mapErrorCodeToHTTPStatus(appErr.Code), appErr)
}

// mapErrorCodeToHTTPStatus maps AppError codes to appropriate HTTP status codes
func mapErrorCodeToHTTPStatus(code contextutils.ErrorCode) int {
	switch code {
	// 4xx Client Errors
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeInvalidFormat, contextutils.ErrorCodeValidationFailed,
		contextutils.ErrorCodeNothingToUpdate:
		return http.StatusBadRequest

	// A solution pointing at a missing problem is reported as not found.
	case contextutils.ErrorCodeRecordNotFound, contextutils.ErrorCodeForeignKeyViolation,
		contextutils.ErrorCodeRouteNotFound:
		return http.StatusNotFound

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	// 5xx Server Errors
	case contextutils.ErrorCodeServiceUnavailable, contextutils.ErrorCodeDatabaseConnection:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
