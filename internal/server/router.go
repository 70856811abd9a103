package server

import (
	"net/http"

	"fab-progress/internal/config"
	"fab-progress/internal/handlers"
	"fab-progress/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.InjectLogger(log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 12 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions("progress_session", store))

	// AUTH
	r.POST("/login", handlers.Login(cfg.PasswordHash))
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// PROJECTS
	auth.GET("/projects", handlers.ListProjects)
	auth.GET("/projects/export.xlsx", handlers.ExportProjects)
	auth.POST("/projects", handlers.CreateProject(cfg.Divisions))
	auth.PUT("/projects/:id", handlers.UpdateProject(cfg.Divisions))
	auth.DELETE("/projects/:id", handlers.DeleteProject)

	// ANALYTICS
	auth.GET("/analytics/stages", handlers.StageAnalytics)

	// WORK LOGS
	auth.GET("/worklogs", handlers.ListWorkLogs)
	auth.POST("/worklogs", handlers.CreateWorkLog)

	// PREFS
	auth.GET("/prefs/filters", handlers.GetFilters)
	auth.PUT("/prefs/filters", handlers.SaveFilters)

	// AUDIT
	auth.GET("/audit", handlers.ListAuditLogs)

	// DIVISIONS
	auth.GET("/divisions", func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.Divisions)
	})

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
