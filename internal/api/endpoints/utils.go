package endpoints

import (
	"fmt"
	"net/http"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/dto"
)

type HTTPError = api.HTTPError

type ApiMessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return api.WriteJSON(w, status, v)
}

// WriteEnvelope and WriteEnvelopeFailure emit the widget wire envelope:
// {"success":true,"data":...} / {"success":false,"data":{"message":...}}.
func WriteEnvelope(w http.ResponseWriter, status int, data any) error {
	return api.WriteJSON(w, status, dto.Success(data))
}

func WriteEnvelopeFailure(w http.ResponseWriter, status int, message string, debug interface{}) error {
	return api.WriteJSON(w, status, dto.Failure(message, debug))
}

func MethodHandler(
	w http.ResponseWriter,
	r *http.Request,
	allowed map[string]func(http.ResponseWriter, *http.Request) error,
) error {
	if handler, ok := allowed[r.Method]; ok {
		return handler(w, r)
	}
	return &HTTPError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    "Method not allowed.",
		ErrorLog:   fmt.Errorf("method not allowed"),
	}
}
