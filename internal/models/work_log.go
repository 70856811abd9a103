package models

import (
	"time"

	"fab-progress/internal/worklog"
)

type WorkLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderNo       string    `gorm:"size:64;index" json:"order_no"`
	ProcessName   string    `gorm:"size:64" json:"process_name"`
	Operator      string    `gorm:"size:64;index" json:"operator"`
	StartTime     time.Time `gorm:"index" json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ActualHours   float64   `json:"actual_hours"`
	StandardHours float64   `json:"standard_hours"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func (w WorkLog) Entry() worklog.Entry {
	return worklog.Entry{
		OrderNo:       w.OrderNo,
		ProcessName:   w.ProcessName,
		Operator:      w.Operator,
		Start:         w.StartTime,
		End:           w.EndTime,
		ActualHours:   w.ActualHours,
		StandardHours: w.StandardHours,
		Notes:         w.Notes,
	}
}

func WorkLogFromEntry(e worklog.Entry) WorkLog {
	return WorkLog{
		OrderNo:       e.OrderNo,
		ProcessName:   e.ProcessName,
		Operator:      e.Operator,
		StartTime:     e.Start,
		EndTime:       e.End,
		ActualHours:   e.ActualHours,
		StandardHours: e.StandardHours,
		Notes:         e.Notes,
	}
}
