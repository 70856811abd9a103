package handlers

import (
	"bytes"
	"net/http"

	"fab-progress/internal/database"
	"fab-progress/internal/export"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ExportProjects(c *gin.Context) {
	f, ok := requestFilters(c)
	if !ok {
		return
	}

	projects, err := database.FindProjects(f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load projects", err)
		return
	}

	var buf bytes.Buffer
	if err := export.Projects(&buf, projects); err != nil {
		fail(c, http.StatusInternalServerError, "could not build spreadsheet", err)
		return
	}

	name := "progress_" + now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
