package endpoints

import (
	"fmt"
	"net/http"

	"avatar-widget-backend/internal/dto"
	"avatar-widget-backend/internal/nonce"
	settingsservice "avatar-widget-backend/internal/service/settings"
	"avatar-widget-backend/internal/widget"
)

// The gateway actions a nonce can be minted for.
const (
	ActionCreateConversation = "create_conversation"
	ActionGetAvatar          = "get_avatar"
	ActionEndConversation    = "end_conversation"
)

var widgetActions = []string{ActionCreateConversation, ActionGetAvatar, ActionEndConversation}

type WidgetEndpoints interface {
	Bootstrap(http.ResponseWriter, *http.Request) error
	Embed(http.ResponseWriter, *http.Request) error
}

type widgetEndpoints struct {
	settings *settingsservice.Service
	nonces   *nonce.Authenticator
	renderer *widget.Renderer
	ajaxURL  string
}

func NewWidgetEndpoints(settings *settingsservice.Service, nonces *nonce.Authenticator, renderer *widget.Renderer, ajaxURL string) WidgetEndpoints {
	return &widgetEndpoints{
		settings: settings,
		nonces:   nonces,
		renderer: renderer,
		ajaxURL:  ajaxURL,
	}
}

func (h *widgetEndpoints) Bootstrap(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleBootstrap,
	})
}

func (h *widgetEndpoints) Embed(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleEmbed,
	})
}

// handleBootstrap is the Go rendition of script localization: the embed
// script gets its endpoint base, one fresh nonce per action, and the
// public slice of the settings.
func (h *widgetEndpoints) handleBootstrap(w http.ResponseWriter, r *http.Request) error {
	siteID := r.URL.Query().Get("siteId")

	site, err := h.settings.Get(r.Context(), siteID)
	if err != nil {
		return mapSettingsServiceError(err)
	}

	nonces := make(map[string]string, len(widgetActions))
	for _, action := range widgetActions {
		token, err := h.nonces.Issue(action, site.SiteID)
		if err != nil {
			return &HTTPError{
				StatusCode: http.StatusInternalServerError,
				Message:    "Internal server error",
				ErrorLog:   fmt.Errorf("issue nonce for %s: %w", action, err),
			}
		}
		nonces[action] = token
	}

	return WriteEnvelope(w, http.StatusOK, dto.BootstrapResponse{
		AjaxURL: h.ajaxURL,
		Nonces:  nonces,
		Widget: dto.WidgetConfigResponse{
			ButtonText:        site.ButtonText,
			ButtonColor:       site.ButtonColor,
			FallbackAvatarURL: site.FallbackAvatarURL,
		},
	})
}

func (h *widgetEndpoints) handleEmbed(w http.ResponseWriter, r *http.Request) error {
	siteID := r.URL.Query().Get("siteId")

	site, err := h.settings.Get(r.Context(), siteID)
	if err != nil {
		return mapSettingsServiceError(err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return h.renderer.Render(w, widget.Data{
		SiteID:            site.SiteID,
		ButtonText:        site.ButtonText,
		ButtonColor:       site.ButtonColor,
		FallbackAvatarURL: site.FallbackAvatarURL,
		BootstrapURL:      h.ajaxURL + "/bootstrap?siteId=" + site.SiteID,
	})
}
