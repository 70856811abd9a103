package handlers

import (
	"fab-progress/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// actor is the audit label for changes made through the dashboard. The
// dashboard has one shared password, so there is no per-user identity.
const actor = "dashboard"

func render(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// fail writes an error body. Server-side errors are logged with the cause;
// the client only sees msg.
func fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		middleware.Logger(c).Error(msg, zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
