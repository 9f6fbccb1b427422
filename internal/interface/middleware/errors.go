package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/pkg/response"
)

// ErrorStack controls whether error envelopes carry a stack.
func ErrorStack(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(response.ExposeStackKey, expose)
		c.Next()
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := debug.Stack()
			if logger != nil {
				logger.WithFields(logrus.Fields{
					"request_id": c.GetString("request_id"),
					"path":       c.Request.URL.Path,
					"panic":      fmt.Sprint(rec),
				}).Error("panic recovered")
			}
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.ErrorStack(c, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("%v\n%s", rec, stack))
		}()
		c.Next()
	}
}

// NotFound answers unmatched routes with the original request path.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not Found - "+c.Request.URL.RequestURI(), nil, nil)
	}
}
