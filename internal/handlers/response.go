package handlers

import (
	"net/http"
	"strconv"

	"ecoatlas/internal/middleware"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, middleware.Envelope{Success: true, Data: data, Message: message})
}

func respondList[T any](c *gin.Context, list []T) {
	if list == nil {
		list = []T{}
	}
	count := len(list)
	c.JSON(http.StatusOK, middleware.Envelope{Success: true, Data: list, Count: &count})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param string) (int, error) {
	raw := c.Param(param)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"Invalid id", "'"+raw+"' is not a positive integer")
	}
	return id, nil
}

// bindJSON decodes the request body and runs the struct's validate tags.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat, contextutils.SeverityWarn,
			"Invalid JSON body", "", err)
	}
	return contextutils.ValidateStruct(dst)
}

// bindQuery decodes recognised query parameters into dst and validates them.
// Unknown parameters are ignored.
func bindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"Invalid query parameters", "", err)
	}
	return contextutils.ValidateStruct(dst)
}
