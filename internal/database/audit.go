package database

import "fab-progress/internal/models"

// CreateAuditLog is best effort: a failed audit write never fails the
// change it describes.
func CreateAuditLog(actor, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}

func RecentAuditLogs(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := DB.Order("created_at desc").Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}
