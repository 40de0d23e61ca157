package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"wht-transfer-api/internal/constant"
	"wht-transfer-api/internal/utils"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("[PANIC] %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, debug.Stack())
				c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeSystemError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
