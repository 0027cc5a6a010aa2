package handlers

import (
	"github.com/gin-gonic/gin"
)

// Health reports liveness in the actuator shape.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	}
}
