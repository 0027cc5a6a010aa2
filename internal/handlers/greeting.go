package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/httpx"
)

// Greeting greets the caller by name. Falls back to the name attached
// to the session token when the query parameter is absent.
func Greeting(log *zap.Logger) gin.HandlerFunc {
	const tag = "[Greeting]"
	return func(c *gin.Context) {
		name := c.Query("name")
		if name == "" {
			name = c.GetString("email")
		}
		if name == "" {
			httpx.BadRequest("name is required").Log(log, tag).Send(c)
			return
		}

		httpx.OK("Greeting generated", gin.H{
			"greeting": fmt.Sprintf("Hello, %s!", name),
		}).Log(log, tag).Send(c)
	}
}
