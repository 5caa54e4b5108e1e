package middleware

import (
	"ecoatlas/internal/observability"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// AbortWithError records err on the gin context for the span middleware and
// writes a failure envelope. 500 responses never expose the underlying cause
// and are sent to error reporting.
func AbortWithError(c *gin.Context, status int, appErr *contextutils.AppError) {
	_ = c.Error(appErr)

	msg := appErr.UserMessage()
	if status >= 500 && appErr.Code != contextutils.ErrorCodeServiceUnavailable {
		msg = contextutils.ErrInternalError.Message
		observability.ReportError(appErr, map[string]string{
			"request_id": c.GetString(RequestIDHeader),
			"route":      c.FullPath(),
		})
	}
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   msg,
		Code:    string(appErr.Code),
	})
}
