package model

const (
	SitesTable  = "WidgetSites"
	AdminsTable = "WidgetAdmins"
)

// SiteItem is the per-site widget configuration. The apiKey is the operator's
// credential for the remote avatar API and is never returned unmasked by the
// admin surface.
type SiteItem struct {
	SiteID            string `dynamodbav:"siteId"`
	APIKey            string `dynamodbav:"apiKey"`
	PersonaID         string `dynamodbav:"personaId"`
	ReplicaID         string `dynamodbav:"replicaId,omitempty"`
	CustomGreeting    string `dynamodbav:"customGreeting"`
	ButtonText        string `dynamodbav:"buttonText"`
	ButtonColor       string `dynamodbav:"buttonColor"`
	FallbackAvatarURL string `dynamodbav:"fallbackAvatarUrl,omitempty"`
	CreatedAt         string `dynamodbav:"createdAt"`
	UpdatedAt         string `dynamodbav:"updatedAt"`
}

type AdminItem struct {
	AdminID      string `dynamodbav:"adminId"`
	SiteID       string `dynamodbav:"siteId"`
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}
