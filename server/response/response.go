package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the uniform API envelope. errs may be nil on success.
func JSON(c *gin.Context, message string, status int, data interface{}, errs error) {
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  nil,
		"status":  http.StatusText(status),
	}
	if errs != nil {
		responsedata["errors"] = errs.Error()
	}

	c.JSON(status, responsedata)
}
