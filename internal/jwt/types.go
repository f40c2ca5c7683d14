package jwt

type Role int

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type Admin struct {
	Id           string `json:"id"`
	SiteID       string `json:"siteId"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type RegisterAdmin struct {
	Email    string
	Password string
}
