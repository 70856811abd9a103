package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionKey is set once the shared access password has been entered.
const SessionKey = "authed"

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if ok, _ := sess.Get(SessionKey).(bool); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "password required"})
			return
		}
		c.Next()
	}
}
