package model

import "time"

// Well-known setting keys.
const (
	SettingWeeklyHoliday = "weekly_holiday"
	SettingLibraryFine   = "library_fine_per_day"
	SettingSchoolName    = "school_name"
)

// AppSetting represents a key-value pair of branch configuration.
type AppSetting struct {
	BranchID  int       `json:"branch_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for bulk updating settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
