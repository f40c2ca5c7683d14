package websocket

// Room groups the connections watching one widget session.
type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

// WSMessage is what goes down the wire: a session transition (or relay
// payload) serialized as Content.
type WSMessage struct {
	Content   string `json:"content"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
}

// InboundMessage is what the embed script sends up: either a control
// command (talk, hangup, toggle-mute) or an SDK event report (joined,
// track-started, left, error).
type InboundMessage struct {
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

type RoomRes struct {
	ID string `json:"id"`
}
