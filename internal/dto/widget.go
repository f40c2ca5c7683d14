package dto

// WidgetActionRequest is the common shape of the widget AJAX body:
// {action, nonce, ...params}. The nonce must have been minted for the same
// action name.
type WidgetActionRequest struct {
	Action         string `json:"action"`
	Nonce          string `json:"nonce"`
	SiteID         string `json:"siteId,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ConversationResponse struct {
	ConversationURL string                 `json:"conversation_url"`
	ConversationID  string                 `json:"conversation_id"`
	Raw             map[string]interface{} `json:"raw,omitempty"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
	Cached    bool   `json:"cached"`
}

type EndConversationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WidgetConfigResponse is the public, secret-free slice of the settings the
// embed script needs to render itself.
type WidgetConfigResponse struct {
	ButtonText        string `json:"buttonText"`
	ButtonColor       string `json:"buttonColor"`
	FallbackAvatarURL string `json:"fallbackAvatarUrl,omitempty"`
}

// BootstrapResponse replaces the host platform's script-localization step:
// it hands the embed script its endpoint base plus one fresh nonce per
// action.
type BootstrapResponse struct {
	AjaxURL string               `json:"ajaxurl"`
	Nonces  map[string]string    `json:"nonces"`
	Widget  WidgetConfigResponse `json:"widget"`
}
