package domain

// Settings is the single persisted settings document backing the settings
// panel. Stored under a fixed doc id, one per installation.
type Settings struct {
	RetentionDays    int    `json:"retention_days"`
	AutoCleanEnabled bool   `json:"auto_clean_enabled"`
	Theme            string `json:"theme"`
}

func DefaultSettings() *Settings {
	return &Settings{
		RetentionDays:    30,
		AutoCleanEnabled: true,
		Theme:            "light",
	}
}

type UpdateSettingsRequest struct {
	RetentionDays    *int    `json:"retention_days" validate:"omitempty,min=1,max=3650"`
	AutoCleanEnabled *bool   `json:"auto_clean_enabled"`
	Theme            *string `json:"theme" validate:"omitempty,oneof=light dark"`
}
