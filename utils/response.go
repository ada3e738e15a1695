package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the auction API's success envelope: status, message
// and the payload under "data".
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the auction API's error envelope. Admission rejections
// surface here with the rejection reason as the message.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
