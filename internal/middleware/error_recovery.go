package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorRecoveryMiddleware turns a handler panic into a 500 envelope and logs
// the stack. Register it after the tracing middleware so the span sees the 500.
func ErrorRecoveryMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			panicErr, ok := rec.(error)
			if !ok {
				panicErr = fmt.Errorf("panic: %v", rec)
			}
			if errors.Is(panicErr, http.ErrAbortHandler) {
				panic(rec)
			}

			stack := string(debug.Stack())
			logger.Error(c.Request.Context(), "Panic recovered", panicErr, map[string]interface{}{
				"http.method": c.Request.Method,
				"http.path":   c.Request.URL.Path,
				"stack":       stack,
			})

			appErr := contextutils.NewAppErrorWithCause(
				contextutils.ErrorCodeInternalError,
				contextutils.SeverityFatal,
				contextutils.ErrInternalError.Message,
				"A panic occurred while processing the request",
				panicErr,
			)
			AbortWithError(c, http.StatusInternalServerError, appErr)
		}()

		c.Next()
	}
}
