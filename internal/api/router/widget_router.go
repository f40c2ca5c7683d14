package router

import (
	"net/http"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/endpoints"
	"avatar-widget-backend/internal/cache"
	"avatar-widget-backend/internal/nonce"
	conversationservice "avatar-widget-backend/internal/service/conversation"
	settingsservice "avatar-widget-backend/internal/service/settings"
	"avatar-widget-backend/internal/tavus"
	"avatar-widget-backend/internal/widget"
)

// WidgetDeps carries what the public widget surface needs beyond the
// database: the remote API client, the avatar cache, and the nonce signer.
type WidgetDeps struct {
	Client *tavus.Client
	Cache  cache.Store
	Nonces *nonce.Authenticator
}

func WidgetRoutes(prefix string, deps WidgetDeps) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		settings := settingsservice.New(s.Database())
		conversations := conversationservice.New(settings, deps.Client, deps.Cache)

		widgetEndpoints := endpoints.NewWidgetEndpoints(settings, deps.Nonces, widget.NewRenderer(), prefix)
		convEndpoints := endpoints.NewConversationEndpoints(conversations, deps.Nonces)
		avatarEndpoints := endpoints.NewAvatarEndpoints(conversations, deps.Nonces)

		mux.HandleFunc(prefix+"/bootstrap", s.MakeHTTPHandleFunc(widgetEndpoints.Bootstrap))
		mux.HandleFunc(prefix+"/embed", s.MakeHTTPHandleFunc(widgetEndpoints.Embed))
		mux.HandleFunc(prefix+"/conversations", s.MakeHTTPHandleFunc(convEndpoints.Create))
		mux.HandleFunc(prefix+"/conversations/end", s.MakeHTTPHandleFunc(convEndpoints.End))
		mux.HandleFunc(prefix+"/avatar", s.MakeHTTPHandleFunc(avatarEndpoints.Avatar))
	}
}
