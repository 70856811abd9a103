package handlers

import (
	"net/http"

	"fab-progress/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginForm struct {
	Password string `form:"password" json:"password"`
}

// Login checks the shared access password.
func Login(passwordHash []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form loginForm
		if err := c.ShouldBind(&form); err != nil || form.Password == "" {
			fail(c, http.StatusBadRequest, "password is required", nil)
			return
		}

		if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(form.Password)); err != nil {
			fail(c, http.StatusUnauthorized, "wrong password", nil)
			return
		}

		sess := sessions.Default(c)
		sess.Set(middleware.SessionKey, true)
		if err := sess.Save(); err != nil {
			fail(c, http.StatusInternalServerError, "could not save session", err)
			return
		}

		render(c, http.StatusOK, gin.H{"ok": true})
	}
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	render(c, http.StatusOK, gin.H{"ok": true})
}
