package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// MaxRequestBodyBytes caps JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// RequestValidationMiddleware rejects bodies that are not JSON or do not match
// the named schema. The body is restored for the handler on success.
func RequestValidationMiddleware(loader *SchemaLoader, schemaName string, logger *observability.Logger) gin.HandlerFunc {
	if !loader.Has(schemaName) {
		panic("RequestValidationMiddleware: unknown schema " + schemaName)
	}

	return func(c *gin.Context) {
		ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "request_validation",
			attribute.String("schema.name", schemaName),
		)
		defer span.End()

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				AbortWithError(c, http.StatusRequestEntityTooLarge, contextutils.NewAppError(
					contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Request body too large", ""))
				return
			}
			AbortWithError(c, http.StatusBadRequest, contextutils.NewAppErrorWithCause(
				contextutils.ErrorCodeInvalidFormat, contextutils.SeverityWarn, "Invalid JSON body", "", err))
			return
		}

		if !json.Valid(body) {
			span.SetAttributes(attribute.String("validation.result", "malformed"))
			AbortWithError(c, http.StatusBadRequest, contextutils.NewAppError(
				contextutils.ErrorCodeInvalidFormat, contextutils.SeverityWarn, "Invalid JSON body", ""))
			return
		}

		if err := loader.ValidateJSON(schemaName, body); err != nil {
			span.SetAttributes(attribute.String("validation.result", "rejected"))
			logger.Warn(ctx, "Request body failed schema validation", map[string]interface{}{
				"http.path":   c.Request.URL.Path,
				"schema_name": schemaName,
				"error":       err.Error(),
			})

			var appErr *contextutils.AppError
			if !errors.As(err, &appErr) {
				appErr = contextutils.ErrInternalError
			}
			AbortWithError(c, statusForValidation(appErr), appErr)
			return
		}

		span.SetAttributes(attribute.String("validation.result", "ok"))
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

func statusForValidation(appErr *contextutils.AppError) int {
	if contextutils.IsClientError(appErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
