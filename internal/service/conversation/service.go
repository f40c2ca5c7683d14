package conversation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"avatar-widget-backend/internal/cache"
	"avatar-widget-backend/internal/model"
	settingsservice "avatar-widget-backend/internal/service/settings"
	"avatar-widget-backend/internal/tavus"
)

// The fixed instruction sent with every conversation create; the per-site
// greeting is the only operator-tunable part of the opening.
const conversationalContext = "Start the conversation by greeting the user and introducing yourself."

const (
	avatarCacheKeyPrefix = "idle_avatar_url:"
	avatarCacheTTL       = 6 * time.Hour
)

type ErrorCode string

const (
	ErrorCodeMissingConfig ErrorCode = "missing_config"
	ErrorCodeTransport     ErrorCode = "transport_error"
	ErrorCodeAPI           ErrorCode = "api_error"
	ErrorCodeValidation    ErrorCode = "validation_error"
	ErrorCodeInternal      ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Debug   interface{}
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AvatarAPI is the slice of the remote client this service needs; tests
// substitute a counting fake to prove precondition failures never reach the
// network.
type AvatarAPI interface {
	CreateConversation(ctx context.Context, apiKey string, params tavus.ConversationParams) (tavus.Conversation, error)
	ReplicaPreviewVideoURL(ctx context.Context, apiKey, replicaID string) (string, error)
	EndConversation(ctx context.Context, apiKey, conversationID string) error
}

type Service struct {
	settings *settingsservice.Service
	api      AvatarAPI
	cache    cache.Store
}

func New(settings *settingsservice.Service, api AvatarAPI, store cache.Store) *Service {
	return &Service{
		settings: settings,
		api:      api,
		cache:    store,
	}
}

type CreateResult struct {
	ConversationURL string
	ConversationID  string
	Raw             map[string]interface{}
}

// Create provisions a remote conversation for a site. Both credentials must
// be configured before any network traffic happens.
func (s *Service) Create(ctx context.Context, siteID string) (CreateResult, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return CreateResult{}, err
	}

	if site.APIKey == "" || site.PersonaID == "" {
		return CreateResult{}, newError(ErrorCodeMissingConfig,
			"API Key and Persona ID are required. Please configure in plugin settings.", nil)
	}

	conv, err := s.api.CreateConversation(ctx, site.APIKey, tavus.ConversationParams{
		PersonaID:             site.PersonaID,
		ConversationalContext: conversationalContext,
		CustomGreeting:        site.CustomGreeting,
		ReplicaID:             site.ReplicaID,
	})
	if err != nil {
		return CreateResult{}, mapClientError(err)
	}

	return CreateResult{
		ConversationURL: conv.ConversationURL,
		ConversationID:  conv.ConversationID,
		Raw:             conv.Raw,
	}, nil
}

type AvatarResult struct {
	AvatarURL string
	Cached    bool
}

// IdleAvatar resolves the looping preview video shown before a call. The
// result is cached per site for six hours; within that window no network
// call is made and expiry is the only way the value refreshes.
func (s *Service) IdleAvatar(ctx context.Context, siteID string) (AvatarResult, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return AvatarResult{}, err
	}

	cacheKey := avatarCacheKeyPrefix + site.SiteID
	if cached, ok, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil && ok {
		return AvatarResult{AvatarURL: cached, Cached: true}, nil
	} else if cacheErr != nil {
		log.Printf("conversation: avatar cache read failed: %v", cacheErr)
	}

	if site.APIKey == "" {
		return AvatarResult{}, newError(ErrorCodeMissingConfig,
			"API Key is required to fetch Tavus avatar.", nil)
	}
	if site.ReplicaID == "" {
		return AvatarResult{}, newError(ErrorCodeMissingConfig,
			"Replica ID is required to fetch Tavus avatar preview video.", nil)
	}

	avatarURL, err := s.api.ReplicaPreviewVideoURL(ctx, site.APIKey, site.ReplicaID)
	if err != nil {
		return AvatarResult{}, mapClientError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, avatarURL, avatarCacheTTL); err != nil {
		log.Printf("conversation: avatar cache write failed: %v", err)
	}

	return AvatarResult{AvatarURL: avatarURL, Cached: false}, nil
}

type EndResult struct {
	Status  string
	Message string
}

// End posts the remote end-conversation notification. Beyond transport
// failures every response counts as success; the remote room tears itself
// down either way.
func (s *Service) End(ctx context.Context, siteID, conversationID string) (EndResult, error) {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return EndResult{}, err
	}

	if site.APIKey == "" {
		return EndResult{}, newError(ErrorCodeMissingConfig, "API Key is required.", nil)
	}

	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return EndResult{}, newError(ErrorCodeValidation, "Conversation ID is required.", nil)
	}

	if err := s.api.EndConversation(ctx, site.APIKey, conversationID); err != nil {
		return EndResult{}, mapClientError(err)
	}

	return EndResult{Status: "success", Message: "Conversation ended"}, nil
}

func (s *Service) loadSite(ctx context.Context, siteID string) (model.SiteItem, error) {
	site, err := s.settings.Get(ctx, siteID)
	if err != nil {
		var svcErr *settingsservice.Error
		if errors.As(err, &svcErr) && svcErr.Code == settingsservice.ErrorCodeValidation {
			return model.SiteItem{}, newError(ErrorCodeValidation, svcErr.Message, err)
		}
		return model.SiteItem{}, newError(ErrorCodeInternal, "failed to load site settings", err)
	}
	return site, nil
}

func mapClientError(err error) *Error {
	var transportErr *tavus.TransportError
	if errors.As(err, &transportErr) {
		return newError(ErrorCodeTransport, transportErr.Error(), err)
	}

	var apiErr *tavus.APIError
	if errors.As(err, &apiErr) {
		svcErr := newError(ErrorCodeAPI, apiErr.Message, err)
		svcErr.Debug = apiErr.Debug()
		return svcErr
	}

	return newError(ErrorCodeInternal, "unexpected avatar API failure", err)
}
