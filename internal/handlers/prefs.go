package handlers

import (
	"net/http"

	"fab-progress/internal/database"
	"fab-progress/internal/models"

	"github.com/gin-gonic/gin"
)

func GetFilters(c *gin.Context) {
	f, err := database.LoadFilters()
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load filters", err)
		return
	}
	render(c, http.StatusOK, f)
}

func SaveFilters(c *gin.Context) {
	var f models.Filters
	if err := c.ShouldBindJSON(&f); err != nil {
		fail(c, http.StatusBadRequest, "invalid filters body", nil)
		return
	}
	statuses, err := normalizeStatuses(f.Statuses)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	f.Statuses = statuses

	if err := database.SaveFilters(f); err != nil {
		fail(c, http.StatusInternalServerError, "could not save filters", err)
		return
	}
	render(c, http.StatusOK, f)
}
