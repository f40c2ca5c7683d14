package dto

type SessionRequest struct {
	SiteID    string `json:"siteId"`
	VisitorID string `json:"visitorId"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`
	Muted     bool   `json:"muted"`
}
