package dto

// UpdateSettingsRequest body de POST /settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}
