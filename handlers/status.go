package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterStatus adds the unauthenticated liveness route.
func RegisterStatus(r *gin.Engine) {
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true, "message": "test api working fine"})
	})
}
