package settings

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/model"
)

const (
	DefaultCustomGreeting = "Hello! How can I assist you today?"
	DefaultButtonText     = "TALK NOW"
	DefaultButtonColor    = "#3B82F6"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
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

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

// Get loads a site's configuration. Sites behave like an options store: a
// site that was never saved still resolves, with empty credentials and
// default copy, so the widget renders even before the operator configures it.
func (s *Service) Get(ctx context.Context, siteID string) (model.SiteItem, error) {
	siteID = strings.TrimSpace(siteID)
	if siteID == "" {
		return model.SiteItem{}, newError(ErrorCodeValidation, "siteId is required", nil)
	}

	site, err := s.repo.GetSite(ctx, siteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return applyDefaults(model.SiteItem{SiteID: siteID}), nil
		}
		return model.SiteItem{}, newError(ErrorCodeInternal, "failed to load site settings", err)
	}

	return applyDefaults(site), nil
}

type Input struct {
	APIKey            string
	PersonaID         string
	ReplicaID         string
	CustomGreeting    string
	ButtonText        string
	ButtonColor       string
	FallbackAvatarURL string
}

// Update overwrites a site's configuration. A blank APIKey keeps the stored
// key, mirroring how the admin form's password field behaves; blank copy
// fields fall back to the defaults.
func (s *Service) Update(ctx context.Context, siteID string, input Input) (model.SiteItem, error) {
	siteID = strings.TrimSpace(siteID)
	if siteID == "" {
		return model.SiteItem{}, newError(ErrorCodeValidation, "siteId is required", nil)
	}

	existing, err := s.repo.GetSite(ctx, siteID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return model.SiteItem{}, newError(ErrorCodeInternal, "failed to load site settings", err)
		}
		existing = model.SiteItem{SiteID: siteID}
	}

	nowStr := s.now().UTC().Format(time.RFC3339)

	next := existing
	next.SiteID = siteID
	next.PersonaID = strings.TrimSpace(input.PersonaID)
	next.ReplicaID = strings.TrimSpace(input.ReplicaID)
	next.CustomGreeting = strings.TrimSpace(input.CustomGreeting)
	next.ButtonText = strings.TrimSpace(input.ButtonText)
	next.FallbackAvatarURL = strings.TrimSpace(input.FallbackAvatarURL)

	if apiKey := strings.TrimSpace(input.APIKey); apiKey != "" {
		next.APIKey = apiKey
	}

	if color := strings.TrimSpace(input.ButtonColor); color != "" {
		if !hexColorPattern.MatchString(color) {
			return model.SiteItem{}, newError(ErrorCodeValidation, "buttonColor must be a valid hex color (e.g. #3B82F6)", nil)
		}
		next.ButtonColor = strings.ToUpper(color)
	} else {
		next.ButtonColor = ""
	}

	if existing.CreatedAt == "" {
		next.CreatedAt = nowStr
	}
	next.UpdatedAt = nowStr

	if err := s.repo.PutSite(ctx, next); err != nil {
		return model.SiteItem{}, newError(ErrorCodeInternal, "failed to save site settings", err)
	}

	return applyDefaults(next), nil
}

func applyDefaults(site model.SiteItem) model.SiteItem {
	if strings.TrimSpace(site.CustomGreeting) == "" {
		site.CustomGreeting = DefaultCustomGreeting
	}
	if strings.TrimSpace(site.ButtonText) == "" {
		site.ButtonText = DefaultButtonText
	}
	if strings.TrimSpace(site.ButtonColor) == "" {
		site.ButtonColor = DefaultButtonColor
	}
	return site
}

// MaskAPIKey hides all but the tail of a stored key so the admin screen can
// confirm one is set without ever echoing it back.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
