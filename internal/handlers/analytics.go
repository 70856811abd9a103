package handlers

import (
	"net/http"
	"strconv"

	"fab-progress/internal/database"
	"fab-progress/internal/progress"

	"github.com/gin-gonic/gin"
)

// StageAnalytics reports stage durations for the filtered projects.
// Query: the list filters, top (default 3) and nonnegative=true to drop
// segments whose later stage is dated first.
func StageAnalytics(c *gin.Context) {
	f, ok := requestFilters(c)
	if !ok {
		return
	}

	opts := progress.AnalyzerOptions{Year: now().Year()}
	if v := c.Query("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(c, http.StatusBadRequest, "top must be a positive integer", nil)
			return
		}
		opts.TopN = n
	}

	projects, err := database.FindProjects(f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load projects", err)
		return
	}

	report := progress.Analyze(records(projects), opts)
	anomalies := report.Anomalies()
	if c.Query("nonnegative") == "true" {
		report = report.NonNegative()
	}

	render(c, http.StatusOK, gin.H{
		"report":    report,
		"anomalies": anomalies,
		"filters":   f,
	})
}
