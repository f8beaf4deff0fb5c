package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/utils"
)

// abort writes the same error body as the handlers.
func abort(c *gin.Context, code utils.Code, msg string) {
	c.AbortWithStatusJSON(utils.StatusFor(code), gin.H{
		"error": msg,
		"code":  code,
	})
}
