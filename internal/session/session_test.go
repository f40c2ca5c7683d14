package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"avatar-widget-backend/internal/service/conversation"
)

type fakeConversations struct {
	mu          sync.Mutex
	createCalls int
	endCalls    int
	lastEndedID string

	result conversation.CreateResult
	err    error
	ended  chan string
}

func newFakeConversations(result conversation.CreateResult, err error) *fakeConversations {
	return &fakeConversations{
		result: result,
		err:    err,
		ended:  make(chan string, 4),
	}
}

func (f *fakeConversations) Create(ctx context.Context, siteID string) (conversation.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.err != nil {
		return conversation.CreateResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeConversations) End(ctx context.Context, siteID, conversationID string) (conversation.EndResult, error) {
	f.mu.Lock()
	f.endCalls++
	f.lastEndedID = conversationID
	f.mu.Unlock()
	f.ended <- conversationID
	return conversation.EndResult{Status: "success", Message: "Conversation ended"}, nil
}

func (f *fakeConversations) creates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

type fakeCall struct {
	mu         sync.Mutex
	joined     int
	left       int
	destroyed  int
	audioCalls []bool
	joinErr    error
}

func (c *fakeCall) Join(ctx context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.joined++
	return c.joinErr
}

func (c *fakeCall) Leave(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left++
	return nil
}

func (c *fakeCall) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed++
}

func (c *fakeCall) SetLocalAudio(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audioCalls = append(c.audioCalls, on)
	return nil
}

func (c *fakeCall) counts() (left, destroyed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.destroyed
}

type fakeFactory struct {
	mu    sync.Mutex
	calls []*fakeCall
	err   error
}

func (f *fakeFactory) NewCall(sessionID string) (Call, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	call := &fakeCall{}
	f.calls = append(f.calls, call)
	return call, nil
}

func (f *fakeFactory) last(t *testing.T) *fakeCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("no call was created")
	}
	return f.calls[len(f.calls)-1]
}

func successResult() conversation.CreateResult {
	return conversation.CreateResult{
		ConversationURL: "https://tavus.daily.co/c123",
		ConversationID:  "c123",
		Raw: map[string]interface{}{
			"conversation_url": "https://tavus.daily.co/c123",
			"conversation_id":  "c123",
		},
	}
}

func watch(s *Session) (<-chan Transition, func()) {
	ch := make(chan Transition, 16)
	unsubscribe := s.Subscribe(func(t Transition) {
		ch <- t
	})
	return ch, unsubscribe
}

func nextTransition(t *testing.T, ch <-chan Transition) Transition {
	t.Helper()
	select {
	case tr := <-ch:
		return tr
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for transition")
		return Transition{}
	}
}

func TestTalkMovesIdleThroughLoadingToInCall(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)
	ch, stop := watch(s)
	defer stop()

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := nextTransition(t, ch)
	if first.From != "idle" || first.To != "loading" || first.Cause != "talk" {
		t.Fatalf("unexpected first transition: %+v", first)
	}
	second := nextTransition(t, ch)
	if second.From != "loading" || second.To != "in_call" {
		t.Fatalf("unexpected second transition: %+v", second)
	}
	if s.State() != StateInCall {
		t.Fatalf("expected in_call, got %s", s.State())
	}
}

func TestTalkCreateFailureEntersError(t *testing.T) {
	conv := newFakeConversations(conversation.CreateResult{}, errors.New("API Key and Persona ID are required. Please configure in plugin settings."))
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)
	ch, stop := watch(s)
	defer stop()

	if err := s.Talk(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	nextTransition(t, ch)
	errTr := nextTransition(t, ch)
	if errTr.To != "error" || errTr.Message == "" {
		t.Fatalf("unexpected transition: %+v", errTr)
	}
	if s.State() != StateError {
		t.Fatalf("expected error state, got %s", s.State())
	}
	if len(factory.calls) != 0 {
		t.Fatal("no call should be created on create failure")
	}
}

func TestTalkWithoutUsableURLEntersError(t *testing.T) {
	conv := newFakeConversations(conversation.CreateResult{Raw: map[string]interface{}{"status": "active"}}, nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != StateError {
		t.Fatalf("expected error state, got %s", s.State())
	}
	if s.LastError() != "No conversation URL received" {
		t.Fatalf("unexpected message: %q", s.LastError())
	}
}

func TestTalkRetriesFromError(t *testing.T) {
	conv := newFakeConversations(conversation.CreateResult{}, errors.New("boom"))
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	_ = s.Talk(context.Background())
	if s.State() != StateError {
		t.Fatalf("expected error state, got %s", s.State())
	}

	conv.mu.Lock()
	conv.err = nil
	conv.result = successResult()
	conv.mu.Unlock()

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if s.State() != StateInCall {
		t.Fatalf("expected in_call after retry, got %s", s.State())
	}
}

func TestTalkIsNoOpWhileActive(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.creates() != 1 {
		t.Fatalf("expected a single create, got %d", conv.creates())
	}
}

func TestHangupIsIdempotent(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	s.Hangup(context.Background())
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := factory.last(t)

	s.Hangup(context.Background())
	s.Hangup(context.Background())

	left, destroyed := call.counts()
	if left != 1 || destroyed != 1 {
		t.Fatalf("expected single leave/destroy, got %d/%d", left, destroyed)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}

	select {
	case id := <-conv.ended:
		if id != "c123" {
			t.Fatalf("unexpected ended conversation: %q", id)
		}
	case <-time.After(time.Second):
		t.Fatal("expected end notification")
	}
}

func TestHangupTearsDownBeforeNextCreate(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := factory.last(t)

	s.Hangup(context.Background())
	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	left, destroyed := first.counts()
	if left != 1 || destroyed != 1 {
		t.Fatalf("first call not torn down: %d/%d", left, destroyed)
	}
	if len(factory.calls) != 2 {
		t.Fatalf("expected two calls, got %d", len(factory.calls))
	}
	if s.State() != StateInCall {
		t.Fatalf("expected in_call, got %s", s.State())
	}
}

func TestSDKErrorTearsDownIntoError(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := factory.last(t)

	s.HandleEvent(EventError, "camera permission denied")

	if s.State() != StateError {
		t.Fatalf("expected error state, got %s", s.State())
	}
	if s.LastError() != "camera permission denied" {
		t.Fatalf("unexpected message: %q", s.LastError())
	}
	left, destroyed := call.counts()
	if left != 1 || destroyed != 1 {
		t.Fatalf("call not torn down: %d/%d", left, destroyed)
	}
}

func TestRemoteLeftReturnsToIdle(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.ToggleMute()

	s.HandleEvent(EventLeft, "")

	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}
	if s.Muted() {
		t.Fatal("expected mute reset")
	}
}

func TestInCallSignalsKeepState(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)
	ch, stop := watch(s)
	defer stop()

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nextTransition(t, ch)
	nextTransition(t, ch)

	s.HandleEvent(EventJoined, "")
	joined := nextTransition(t, ch)
	if joined.From != "in_call" || joined.To != "in_call" || joined.Cause != "joined" {
		t.Fatalf("unexpected transition: %+v", joined)
	}

	s.HandleEvent(EventTrackStarted, "")
	track := nextTransition(t, ch)
	if track.Cause != "track-started" || track.To != "in_call" {
		t.Fatalf("unexpected transition: %+v", track)
	}
}

func TestToggleMuteGuards(t *testing.T) {
	conv := newFakeConversations(successResult(), nil)
	factory := &fakeFactory{}
	s := newSession("s1", "site-1", conv, factory)

	if muted := s.ToggleMute(); muted {
		t.Fatal("mute outside a call should be a no-op")
	}

	if err := s.Talk(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := factory.last(t)

	if muted := s.ToggleMute(); !muted {
		t.Fatal("expected muted after first toggle")
	}
	if muted := s.ToggleMute(); muted {
		t.Fatal("expected unmuted after second toggle")
	}

	call.mu.Lock()
	audio := append([]bool(nil), call.audioCalls...)
	call.mu.Unlock()
	if len(audio) != 2 || audio[0] != false || audio[1] != true {
		t.Fatalf("unexpected audio calls: %v", audio)
	}
}
