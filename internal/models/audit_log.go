package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Actor    string `gorm:"size:64" json:"actor"`           // "dashboard"
	Entity   string `gorm:"size:50;not null" json:"entity"` // "project", "worklog"
	EntityID uint   `json:"entity_id"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "update", "delete"
	Details  string `gorm:"type:text" json:"details"`
}
