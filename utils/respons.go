package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorModel is the body of every failed response. Code usually matches the
// HTTP status but a few endpoints keep historical codes.
type ErrorModel struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RespondError writes an ErrorModel whose body code equals the HTTP status.
func RespondError(c *gin.Context, code int, err error) {
	RespondErrorCode(c, code, code, err)
}

// RespondErrorCode writes an ErrorModel with a body code that differs from status.
func RespondErrorCode(c *gin.Context, status, code int, err error) {
	c.JSON(status, ErrorModel{
		Code:    code,
		Message: err.Error(),
	})
}
