package dto

type SettingsResponse struct {
	SiteID            string `json:"siteId"`
	APIKey            string `json:"apiKey"`
	PersonaID         string `json:"personaId"`
	ReplicaID         string `json:"replicaId,omitempty"`
	CustomGreeting    string `json:"customGreeting"`
	ButtonText        string `json:"buttonText"`
	ButtonColor       string `json:"buttonColor"`
	FallbackAvatarURL string `json:"fallbackAvatarUrl,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

type SettingsResultResponse struct {
	Settings SettingsResponse `json:"settings"`
}

// UpdateSettingsRequest mirrors the admin form. An empty APIKey leaves the
// stored key untouched, the way password fields behave.
type UpdateSettingsRequest struct {
	APIKey            string `json:"apiKey,omitempty"`
	PersonaID         string `json:"personaId"`
	ReplicaID         string `json:"replicaId,omitempty"`
	CustomGreeting    string `json:"customGreeting,omitempty"`
	ButtonText        string `json:"buttonText,omitempty"`
	ButtonColor       string `json:"buttonColor,omitempty"`
	FallbackAvatarURL string `json:"fallbackAvatarUrl,omitempty"`
}
