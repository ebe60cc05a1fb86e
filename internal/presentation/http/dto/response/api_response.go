package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-analytics-api/pkg/apperror"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// OK sends a 200 OK response with data as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response using the status code carried by err
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, ErrorResponse{
		Message: appErr.Message,
		Error:   appErr.Detail(),
	})
}

// Abort sends an error response and stops the handler chain
func Abort(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	c.AbortWithStatusJSON(appErr.Code, ErrorResponse{
		Message: appErr.Message,
		Error:   appErr.Detail(),
	})
}
