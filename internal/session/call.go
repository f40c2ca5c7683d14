package session

import "context"

// Event names match what the browser-side SDK shim reports back over the
// websocket.
type Event string

const (
	EventJoined       Event = "joined"
	EventTrackStarted Event = "track-started"
	EventLeft         Event = "left"
	EventError        Event = "error"
)

// Call is the slice of the video SDK a session drives. Join blocks until
// the room is entered or fails; Destroy releases the handle and is safe to
// call after Leave.
type Call interface {
	Join(ctx context.Context, url string) error
	Leave(ctx context.Context) error
	Destroy()
	SetLocalAudio(on bool) error
}

// CallFactory produces one call handle per join attempt. The production
// factory bridges to the browser over the session websocket; tests plug in
// an in-memory fake.
type CallFactory interface {
	NewCall(sessionID string) (Call, error)
}
