package handlers

import (
	"net/http"
	"time"

	"fab-progress/internal/database"
	"fab-progress/internal/models"
	"fab-progress/internal/worklog"

	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

// ListWorkLogs summarises work-hour entries. Query: from, to (YYYY-MM-DD,
// inclusive), operator, process.
func ListWorkLogs(c *gin.Context) {
	var f worklog.Filter
	for _, q := range []struct {
		key string
		dst *time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := c.Query(q.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(dayLayout, v)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid "+q.key+" date", nil)
			return
		}
		*q.dst = t
	}
	f.Operator = c.Query("operator")
	f.Process = c.Query("process")

	var logs []models.WorkLog
	if err := database.DB.Order("start_time desc").Find(&logs).Error; err != nil {
		fail(c, http.StatusInternalServerError, "could not load work logs", err)
		return
	}

	entries := make([]worklog.Entry, len(logs))
	for i, l := range logs {
		entries[i] = l.Entry()
	}

	render(c, http.StatusOK, gin.H{
		"summary": worklog.Summarize(entries, f),
		"count":   len(logs),
	})
}

type workLogForm struct {
	OrderNo       string    `json:"order_no"`
	ProcessName   string    `json:"process_name"`
	Operator      string    `json:"operator"`
	Start         time.Time `json:"start_time"`
	End           time.Time `json:"end_time"`
	StandardHours float64   `json:"standard_hours"`
	Notes         string    `json:"notes"`
}

func CreateWorkLog(c *gin.Context) {
	var form workLogForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, http.StatusBadRequest, "invalid work log body", nil)
		return
	}
	if form.Start.IsZero() || form.End.IsZero() {
		fail(c, http.StatusBadRequest, "start_time and end_time are required", nil)
		return
	}
	if form.StandardHours < 0 {
		fail(c, http.StatusBadRequest, "standard_hours must not be negative", nil)
		return
	}

	entry, err := worklog.NewEntry(form.OrderNo, form.ProcessName, form.Operator,
		form.Start, form.End, form.StandardHours, form.Notes)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	row := models.WorkLogFromEntry(entry)
	if err := database.DB.Create(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "could not save work log", err)
		return
	}

	database.CreateAuditLog(actor, "worklog", row.ID, "create", "order "+row.OrderNo)
	render(c, http.StatusCreated, row)
}
