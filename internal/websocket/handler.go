package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"avatar-widget-backend/internal/env"
	"avatar-widget-backend/internal/session"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.WidgetRedisURL),
		Password: env.Get(env.WidgetRedisPass),
		DB:       0,
	})
}

// CommandSink receives inbound websocket messages. The session manager is
// the production sink: control commands drive the machine, event reports
// feed it SDK signals.
type CommandSink interface {
	HandleCommand(sessionID string, msg InboundMessage)
}

// SessionSink adapts a session.Manager into a CommandSink.
type SessionSink struct {
	Sessions *session.Manager
}

func (s *SessionSink) HandleCommand(sessionID string, msg InboundMessage) {
	sess, ok := s.Sessions.Get(sessionID)
	if !ok {
		log.Printf("Command for unknown session %s: %s", sessionID, msg.Type)
		return
	}

	switch msg.Type {
	case "talk":
		go func() {
			if err := sess.Talk(context.Background()); err != nil {
				log.Printf("Session %s: talk failed: %v", sessionID, err)
			}
		}()
	case "hangup":
		sess.Hangup(context.Background())
	case "toggle-mute":
		sess.ToggleMute()
	case string(session.EventJoined), string(session.EventTrackStarted),
		string(session.EventLeft), string(session.EventError):
		sess.HandleEvent(session.Event(msg.Type), msg.Detail)
	default:
		log.Printf("Session %s: unknown message type %q", sessionID, msg.Type)
	}
}

type Handler struct {
	hub         *Hub
	redisClient *redis.Client
	sink        CommandSink
}

func NewHandler(h *Hub, sink CommandSink) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
		sink:        sink,
	}
}

// subscribeToSessionChannel relays transitions published on the session's
// redis channel into the hub room.
func (h *Handler) subscribeToSessionChannel(sessionID string) {
	if _, exists := h.hub.Rooms[sessionID]; !exists {
		log.Printf("Session room %s not found for subscription", sessionID)
		return
	}

	subscriber := h.redisClient.Subscribe(context.Background(), session.ChannelName(sessionID))
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		h.hub.Broadcast <- &WSMessage{
			Content:   msg.Payload,
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
		}
	}
	log.Printf("Unsubscribed from session channel: %s", sessionID)
}

func (h *Handler) CreateRoom(sessionID string) {
	if _, exists := h.hub.Rooms[sessionID]; exists {
		return
	}

	room := &Room{
		Id:      sessionID,
		Clients: make(map[string]*WSClient),
	}

	h.hub.Rooms[sessionID] = room
	setSessions(len(h.hub.Rooms))

	go h.subscribeToSessionChannel(sessionID)
}

func (h *Handler) JoinSession(w http.ResponseWriter, r *http.Request, sessionID, clientID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cl := &WSClient{
		Conn:      conn,
		Message:   make(chan *WSMessage, 10),
		ID:        clientID,
		SessionID: sessionID,
		done:      make(chan struct{}),
		isClosed:  false,
	}

	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub, h.sink)
}

func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms := make([]RoomRes, 0)

	for _, room := range h.hub.Rooms {
		rooms = append(rooms, RoomRes{
			ID: room.Id,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rooms)
}
