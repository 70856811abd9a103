package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"fab-progress/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const filtersKey = "ui_state"

// LoadFilters returns the zero value when nothing has been saved yet.
func LoadFilters() (models.Filters, error) {
	var pref models.UserPref
	err := DB.First(&pref, "key = ?", filtersKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Filters{}, nil
	}
	if err != nil {
		return models.Filters{}, fmt.Errorf("load filters: %w", err)
	}

	var f models.Filters
	if err := json.Unmarshal([]byte(pref.Value), &f); err != nil {
		return models.Filters{}, fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}

func SaveFilters(f models.Filters) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	pref := models.UserPref{Key: filtersKey, Value: string(data)}
	err = DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	return nil
}
