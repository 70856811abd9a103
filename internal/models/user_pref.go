package models

// UserPref is a small key/value row; the dashboard stores its last filter
// selection under "ui_state".
type UserPref struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

// Filters is the analysis/list filter a user last selected.
type Filters struct {
	Section  string   `json:"section"`
	Year     string   `json:"year"`
	Statuses []string `json:"statuses"`
}
