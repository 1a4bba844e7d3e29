package response

import (
	"github.com/gin-gonic/gin"
)

// JSON writes the uniform response envelope. Every response carries a status
// code, a human-readable message and either the payload or the error detail.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	responseData := gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	}
	if err != nil {
		responseData["errors"] = err.Error()
	}
	c.JSON(status, responseData)
}
