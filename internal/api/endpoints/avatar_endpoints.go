package endpoints

import (
	"net/http"

	"avatar-widget-backend/internal/dto"
	"avatar-widget-backend/internal/nonce"
	conversationservice "avatar-widget-backend/internal/service/conversation"
)

type AvatarEndpoints interface {
	Avatar(http.ResponseWriter, *http.Request) error
}

type avatarEndpoints struct {
	conversations *conversationservice.Service
	nonces        *nonce.Authenticator
}

func NewAvatarEndpoints(conversations *conversationservice.Service, nonces *nonce.Authenticator) AvatarEndpoints {
	return &avatarEndpoints{
		conversations: conversations,
		nonces:        nonces,
	}
}

func (h *avatarEndpoints) Avatar(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleAvatar,
	})
}

func (h *avatarEndpoints) handleAvatar(w http.ResponseWriter, r *http.Request) error {
	_, siteID, ok := decodeWidgetAction(w, r, h.nonces, ActionGetAvatar)
	if !ok {
		return nil
	}

	result, err := h.conversations.IdleAvatar(r.Context(), siteID)
	if err != nil {
		return writeConversationFailure(w, err)
	}

	return WriteEnvelope(w, http.StatusOK, dto.AvatarResponse{
		AvatarURL: result.AvatarURL,
		Cached:    result.Cached,
	})
}
