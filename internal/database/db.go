package database

import (
	"fmt"
	"time"

	"fab-progress/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Init connects to postgres, retrying while the database container starts,
// and migrates the schema.
func Init(dsn string, log *zap.Logger) error {
	var err error
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max", maxAttempts))

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Info("connected to database")
			break
		}

		log.Warn("database connection failed", zap.Error(err))
		time.Sleep(retryBackoff)
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", maxAttempts, err)
	}

	return Migrate()
}

func Migrate() error {
	if err := DB.AutoMigrate(
		&models.Project{},
		&models.WorkLog{},
		&models.UserPref{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// FindProjects returns the rows matching f, newest case number first.
func FindProjects(f models.Filters) ([]models.Project, error) {
	q := DB.Order("case_number desc").Order("id desc")
	if f.Section != "" {
		q = q.Where("section = ?", f.Section)
	}
	if f.Year != "" {
		q = q.Where("handover_year = ?", f.Year)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status_category IN ?", f.Statuses)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	return projects, nil
}
