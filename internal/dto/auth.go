package dto

type RegisterRequest struct {
	SiteID   string `json:"siteId,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AdminResponse struct {
	AdminID string `json:"adminId"`
	SiteID  string `json:"siteId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type AuthResponse struct {
	Admin        AdminResponse `json:"admin"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken,omitempty"`
}
