package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"avatar-widget-backend/internal/dto"
	"avatar-widget-backend/internal/session"
	"avatar-widget-backend/internal/websocket"

	"github.com/google/uuid"
)

type SessionEndpoints interface {
	Sessions(http.ResponseWriter, *http.Request) error
	SessionSocket(http.ResponseWriter, *http.Request) error
}

type sessionEndpoints struct {
	sessions     *session.Manager
	handler      *websocket.Handler
	socketPrefix string
}

func NewSessionEndpoints(sessions *session.Manager, handler *websocket.Handler, socketPrefix string) SessionEndpoints {
	return &sessionEndpoints{
		sessions:     sessions,
		handler:      handler,
		socketPrefix: socketPrefix,
	}
}

func (h *sessionEndpoints) Sessions(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleCreateSession,
	})
}

func (h *sessionEndpoints) SessionSocket(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleSessionSocket,
	})
}

// handleCreateSession hands the embed script its session id. Reconnecting
// with the same visitor id resolves to the existing session, so a page
// reload never stacks a second call.
func (h *sessionEndpoints) handleCreateSession(w http.ResponseWriter, r *http.Request) error {
	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return WriteEnvelopeFailure(w, http.StatusBadRequest, "Invalid request payload", nil)
	}

	siteID := strings.TrimSpace(req.SiteID)
	visitorID := strings.TrimSpace(req.VisitorID)
	if siteID == "" || visitorID == "" {
		return WriteEnvelopeFailure(w, http.StatusBadRequest, "siteId and visitorId are required.", nil)
	}

	sess := h.sessions.Acquire(siteID, visitorID)
	h.handler.CreateRoom(sess.ID())

	return WriteEnvelope(w, http.StatusOK, dto.SessionResponse{
		SessionID: sess.ID(),
		State:     sess.State().String(),
		Muted:     sess.Muted(),
	})
}

func (h *sessionEndpoints) handleSessionSocket(w http.ResponseWriter, r *http.Request) error {
	sessionID := strings.TrimPrefix(r.URL.Path, h.socketPrefix)
	sessionID = strings.Trim(sessionID, "/")

	if _, ok := h.sessions.Get(sessionID); !ok {
		return WriteEnvelopeFailure(w, http.StatusNotFound, "Unknown session.", nil)
	}

	h.handler.CreateRoom(sessionID)
	h.handler.JoinSession(w, r, sessionID, uuid.NewString())
	return nil
}
