package router

import (
	"net/http"
	"strings"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/endpoints"
)

func SessionRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		socketPrefix := strings.TrimRight(prefix, "/") + "/sessions/"
		sessionEndpoints := endpoints.NewSessionEndpoints(s.Sessions(), s.Handler(), socketPrefix)

		mux.HandleFunc(prefix+"/sessions", s.MakeHTTPHandleFunc(sessionEndpoints.Sessions))
		mux.HandleFunc(prefix+"/sessions/", s.MakeHTTPHandleFunc(sessionEndpoints.SessionSocket))
	}
}
