package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root is the liveness answer on GET /.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "api working")
}
