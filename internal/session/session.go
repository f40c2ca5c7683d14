package session

import (
	"context"
	"log"
	"sync"

	"avatar-widget-backend/internal/service/conversation"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateInCall
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateInCall:
		return "in_call"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ConversationAPI is the slice of the proxy service a session needs.
type ConversationAPI interface {
	Create(ctx context.Context, siteID string) (conversation.CreateResult, error)
	End(ctx context.Context, siteID, conversationID string) (conversation.EndResult, error)
}

// Transition is delivered to every observer on each state change. From and
// To are equal for in-state signals such as the remote track arriving.
type Transition struct {
	SessionID string `json:"sessionId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Cause     string `json:"cause"`
	Message   string `json:"message,omitempty"`
	Muted     bool   `json:"muted"`
}

type Observer func(Transition)

// Session drives one widget's call lifecycle. All shared fields sit behind
// the mutex; the SDK handle is only ever touched through the session's own
// methods.
type Session struct {
	id     string
	siteID string

	conversations ConversationAPI
	factory       CallFactory

	mu             sync.Mutex
	state          State
	call           Call
	muted          bool
	conversationID string
	lastError      string

	observerMu   sync.Mutex
	observers    map[int]Observer
	nextObserver int
}

func newSession(id, siteID string, conversations ConversationAPI, factory CallFactory) *Session {
	return &Session{
		id:            id,
		siteID:        siteID,
		conversations: conversations,
		factory:       factory,
		state:         StateIdle,
		observers:     make(map[int]Observer),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SiteID() string {
	return s.siteID
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Subscribe registers an observer for every transition. The returned func
// removes it again.
func (s *Session) Subscribe(fn Observer) func() {
	s.observerMu.Lock()
	defer s.observerMu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn

	return func() {
		s.observerMu.Lock()
		defer s.observerMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Session) notify(t Transition) {
	s.observerMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observerMu.Unlock()

	for _, fn := range observers {
		fn(t)
	}
}

func (s *Session) transitionLocked(to State, cause, message string) {
	from := s.state
	s.state = to
	if to == StateError {
		s.lastError = message
	} else {
		s.lastError = ""
	}

	t := Transition{
		SessionID: s.id,
		From:      from.String(),
		To:        to.String(),
		Cause:     cause,
		Message:   message,
		Muted:     s.muted,
	}

	s.mu.Unlock()
	s.notify(t)
	s.mu.Lock()
}

// Talk starts a call. From Idle it loads; from Error it retries; while a
// call is already loading or running it does nothing. Any previous call
// handle is torn down to completion before the new conversation is created.
func (s *Session) Talk(ctx context.Context) error {
	s.mu.Lock()

	if s.state == StateLoading || s.state == StateInCall {
		s.mu.Unlock()
		return nil
	}

	if s.call != nil {
		s.teardownLocked(ctx)
	}

	s.transitionLocked(StateLoading, "talk", "")
	s.mu.Unlock()

	result, err := s.conversations.Create(ctx, s.siteID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Hangup raced the create; whatever came back is abandoned.
	if s.state != StateLoading {
		return nil
	}

	if err != nil {
		s.transitionLocked(StateError, "create-failed", err.Error())
		return err
	}

	url := JoinURL(result)
	if url == "" {
		s.transitionLocked(StateError, "create-failed", "No conversation URL received")
		return nil
	}

	call, err := s.factory.NewCall(s.id)
	if err != nil {
		s.transitionLocked(StateError, "create-failed", err.Error())
		return err
	}

	s.call = call
	s.conversationID = result.ConversationID
	s.transitionLocked(StateInCall, "joining", "")

	go func() {
		if err := call.Join(ctx, url); err != nil {
			s.HandleEvent(EventError, err.Error())
		}
	}()

	return nil
}

// HandleEvent feeds an SDK event into the machine. Joined and track-started
// are in-state signals while a call runs; error tears down into Error; left
// releases everything back to Idle.
func (s *Session) HandleEvent(event Event, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event {
	case EventJoined:
		if s.state == StateInCall {
			s.transitionLocked(StateInCall, "joined", "")
		}
	case EventTrackStarted:
		if s.state == StateInCall {
			s.transitionLocked(StateInCall, "track-started", "")
		}
	case EventError:
		if s.call != nil {
			s.teardownLocked(context.Background())
		}
		s.muted = false
		s.transitionLocked(StateError, "sdk-error", detail)
	case EventLeft:
		if s.state != StateInCall && s.state != StateLoading {
			return
		}
		if s.call != nil {
			s.teardownLocked(context.Background())
		}
		s.muted = false
		s.transitionLocked(StateIdle, "left", "")
	}
}

// Hangup ends the call and returns the session to Idle. It is idempotent:
// with no active call it still resets state and mute.
func (s *Session) Hangup(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversationID := s.conversationID
	s.conversationID = ""

	if s.call != nil {
		s.teardownLocked(ctx)
	}
	s.muted = false

	if s.state != StateIdle {
		s.transitionLocked(StateIdle, "hangup", "")
	}

	if conversationID != "" {
		// Fire and forget; the remote room times out on its own if this
		// never lands.
		go func() {
			if _, err := s.conversations.End(context.Background(), s.siteID, conversationID); err != nil {
				log.Printf("session %s: end conversation failed: %v", s.id, err)
			}
		}()
	}
}

// ToggleMute flips the local audio track. Outside an active call it does
// nothing and reports unmuted.
func (s *Session) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInCall || s.call == nil {
		return false
	}

	s.muted = !s.muted
	if err := s.call.SetLocalAudio(!s.muted); err != nil {
		log.Printf("session %s: set local audio failed: %v", s.id, err)
	}
	s.transitionLocked(StateInCall, "mute-toggled", "")

	return s.muted
}

// teardownLocked leaves and destroys the current call handle. Runs to
// completion before returning so a follow-up create never overlaps the old
// call.
func (s *Session) teardownLocked(ctx context.Context) {
	call := s.call
	s.call = nil
	if call == nil {
		return
	}

	s.mu.Unlock()
	if err := call.Leave(ctx); err != nil {
		log.Printf("session %s: leave failed: %v", s.id, err)
	}
	call.Destroy()
	s.mu.Lock()
}
