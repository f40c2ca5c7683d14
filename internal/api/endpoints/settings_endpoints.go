package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/dto"
	"avatar-widget-backend/internal/model"
	authservice "avatar-widget-backend/internal/service/auth"
	settingsservice "avatar-widget-backend/internal/service/settings"
)

type SettingsEndpoints interface {
	Settings(http.ResponseWriter, *http.Request) error
}

type settingsEndpoints struct {
	settings *settingsservice.Service
	auth     *authservice.Service
}

func NewSettingsEndpoints(db *database.Database) SettingsEndpoints {
	return &settingsEndpoints{
		settings: settingsservice.New(db),
		auth:     authservice.New(db),
	}
}

func NewSettingsEndpointsWithServices(settings *settingsservice.Service, auth *authservice.Service) SettingsEndpoints {
	return &settingsEndpoints{
		settings: settings,
		auth:     auth,
	}
}

func (h *settingsEndpoints) Settings(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleGetSettings,
		http.MethodPut: h.handleUpdateSettings,
	})
}

func (h *settingsEndpoints) handleGetSettings(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.auth.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return mapAuthServiceError(err)
	}

	site, err := h.settings.Get(r.Context(), identity.SiteID)
	if err != nil {
		return mapSettingsServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.SettingsResultResponse{
		Settings: settingsResult(site),
	})
}

func (h *settingsEndpoints) handleUpdateSettings(w http.ResponseWriter, r *http.Request) error {
	identity, err := h.auth.IdentityFromAuthorizationHeader(r.Header.Get("Authorization"))
	if err != nil {
		return mapAuthServiceError(err)
	}

	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode settings request: %w", err),
		}
	}

	site, err := h.settings.Update(r.Context(), identity.SiteID, settingsservice.Input{
		APIKey:            req.APIKey,
		PersonaID:         req.PersonaID,
		ReplicaID:         req.ReplicaID,
		CustomGreeting:    req.CustomGreeting,
		ButtonText:        req.ButtonText,
		ButtonColor:       req.ButtonColor,
		FallbackAvatarURL: req.FallbackAvatarURL,
	})
	if err != nil {
		return mapSettingsServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.SettingsResultResponse{
		Settings: settingsResult(site),
	})
}

// settingsResult masks the stored key; the admin UI only ever needs to know
// a key is present.
func settingsResult(site model.SiteItem) dto.SettingsResponse {
	return dto.SettingsResponse{
		SiteID:            site.SiteID,
		APIKey:            settingsservice.MaskAPIKey(site.APIKey),
		PersonaID:         site.PersonaID,
		ReplicaID:         site.ReplicaID,
		CustomGreeting:    site.CustomGreeting,
		ButtonText:        site.ButtonText,
		ButtonColor:       site.ButtonColor,
		FallbackAvatarURL: site.FallbackAvatarURL,
		UpdatedAt:         site.UpdatedAt,
	}
}

func mapSettingsServiceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*settingsservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("settings service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case settingsservice.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	case settingsservice.ErrorCodeNotFound:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   errorLog,
		}
	}
}
