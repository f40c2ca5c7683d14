package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Publisher mirrors transitions to interested peers; the redis
// implementation feeds the websocket fan-out.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// ChannelName is the pub/sub channel carrying a session's transitions.
func ChannelName(sessionID string) string {
	return "session:" + sessionID
}

// Manager hands out sessions keyed by site and visitor, creating them on
// demand. A visitor keeps the same session across reconnects, so a second
// Talk tears down the first call instead of stacking a new one.
type Manager struct {
	conversations ConversationAPI
	factory       CallFactory
	publisher     Publisher

	mu       sync.Mutex
	sessions map[string]*Session
	byKey    map[string]string
}

func NewManager(conversations ConversationAPI, factory CallFactory, publisher Publisher) *Manager {
	return &Manager{
		conversations: conversations,
		factory:       factory,
		publisher:     publisher,
		sessions:      make(map[string]*Session),
		byKey:         make(map[string]string),
	}
}

func sessionKey(siteID, visitorID string) string {
	return siteID + "#" + visitorID
}

// Acquire returns the visitor's session, creating one with a fresh uuid if
// none exists yet.
func (m *Manager) Acquire(siteID, visitorID string) *Session {
	key := sessionKey(siteID, visitorID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byKey[key]; ok {
		if existing, ok := m.sessions[id]; ok {
			return existing
		}
	}

	id := uuid.NewString()
	s := newSession(id, siteID, m.conversations, m.factory)

	if m.publisher != nil {
		s.Subscribe(func(t Transition) {
			payload, err := json.Marshal(t)
			if err != nil {
				log.Printf("session %s: marshal transition: %v", t.SessionID, err)
				return
			}
			if err := m.publisher.Publish(context.Background(), ChannelName(t.SessionID), payload); err != nil {
				log.Printf("session %s: publish transition: %v", t.SessionID, err)
			}
		})
	}

	m.sessions[id] = s
	m.byKey[key] = id

	return s
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Release hangs up and forgets a session.
func (m *Manager) Release(ctx context.Context, sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
		for key, id := range m.byKey {
			if id == sessionID {
				delete(m.byKey, key)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		s.Hangup(ctx)
	}
}
