package router

import (
	"net/http"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/endpoints"
	"avatar-widget-backend/internal/api/middleware"
)

func SettingsRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		settingsEndpoints := endpoints.NewSettingsEndpoints(s.Database())
		mux.HandleFunc(prefix+"/settings", s.MakeHTTPHandleFunc(settingsEndpoints.Settings, middleware.ValidateAdminJWT))
	}
}
