package handlers

import (
	"net/http"

	"fab-progress/internal/database"

	"github.com/gin-gonic/gin"
)

const auditLimit = 200

func ListAuditLogs(c *gin.Context) {
	logs, err := database.RecentAuditLogs(auditLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load audit log", err)
		return
	}
	render(c, http.StatusOK, gin.H{"logs": logs})
}
