package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of the common JSON envelope.
type Response map[string]interface{}

// Business error codes.
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Success writes the common success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
