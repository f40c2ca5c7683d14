package endpoints

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"avatar-widget-backend/internal/dto"
	"avatar-widget-backend/internal/nonce"
	conversationservice "avatar-widget-backend/internal/service/conversation"
)

type ConversationEndpoints interface {
	Create(http.ResponseWriter, *http.Request) error
	End(http.ResponseWriter, *http.Request) error
}

type conversationEndpoints struct {
	conversations *conversationservice.Service
	nonces        *nonce.Authenticator
}

func NewConversationEndpoints(conversations *conversationservice.Service, nonces *nonce.Authenticator) ConversationEndpoints {
	return &conversationEndpoints{
		conversations: conversations,
		nonces:        nonces,
	}
}

func (h *conversationEndpoints) Create(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreate,
	})
}

func (h *conversationEndpoints) End(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleEnd,
	})
}

func (h *conversationEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	_, siteID, ok := decodeWidgetAction(w, r, h.nonces, ActionCreateConversation)
	if !ok {
		return nil
	}

	result, err := h.conversations.Create(r.Context(), siteID)
	if err != nil {
		return writeConversationFailure(w, err)
	}

	return WriteEnvelope(w, http.StatusOK, dto.ConversationResponse{
		ConversationURL: result.ConversationURL,
		ConversationID:  result.ConversationID,
		Raw:             result.Raw,
	})
}

func (h *conversationEndpoints) handleEnd(w http.ResponseWriter, r *http.Request) error {
	req, siteID, ok := decodeWidgetAction(w, r, h.nonces, ActionEndConversation)
	if !ok {
		return nil
	}

	result, err := h.conversations.End(r.Context(), siteID, req.ConversationID)
	if err != nil {
		return writeConversationFailure(w, err)
	}

	return WriteEnvelope(w, http.StatusOK, dto.EndConversationResponse{
		Status:  result.Status,
		Message: result.Message,
	})
}

// decodeWidgetAction parses the common action body and checks the nonce
// against the expected action. On failure the envelope has already been
// written; the site id always comes from the verified token, never the
// request body.
func decodeWidgetAction(w http.ResponseWriter, r *http.Request, nonces *nonce.Authenticator, action string) (dto.WidgetActionRequest, string, bool) {
	var req dto.WidgetActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteEnvelopeFailure(w, http.StatusBadRequest, "Invalid request payload", nil)
		return req, "", false
	}

	if req.Action != "" && req.Action != action {
		WriteEnvelopeFailure(w, http.StatusBadRequest, "Unknown action.", nil)
		return req, "", false
	}

	siteID, err := nonces.Verify(req.Nonce, action)
	if err != nil {
		log.Printf("widget action %s: nonce rejected: %v", action, err)
		WriteEnvelopeFailure(w, http.StatusUnauthorized, "Security check failed.", nil)
		return req, "", false
	}

	return req, siteID, true
}

// writeConversationFailure turns proxy errors into the failure envelope.
// Visitors get the message; the debug payload carries remote status and
// bodies for operators.
func writeConversationFailure(w http.ResponseWriter, err error) error {
	var svcErr *conversationservice.Error
	if !errors.As(err, &svcErr) {
		log.Printf("conversation endpoint: %v", err)
		return WriteEnvelopeFailure(w, http.StatusInternalServerError, "Internal server error", nil)
	}

	if svcErr.Err != nil {
		log.Printf("conversation endpoint: %s: %v", svcErr.Message, svcErr.Err)
	}

	var status int
	switch svcErr.Code {
	case conversationservice.ErrorCodeMissingConfig, conversationservice.ErrorCodeValidation:
		status = http.StatusBadRequest
	case conversationservice.ErrorCodeTransport, conversationservice.ErrorCodeAPI:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	return WriteEnvelopeFailure(w, status, svcErr.Message, svcErr.Debug)
}
