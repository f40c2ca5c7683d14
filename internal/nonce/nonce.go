package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// A nonce authenticates one widget action for one site for a bounded window.
// It is minted by the bootstrap endpoint and must accompany every AJAX-style
// request; tokens minted for one action are rejected on every other action.

const DefaultTTL = 12 * time.Hour

var (
	ErrEmpty    = errors.New("nonce: token required")
	ErrInvalid  = errors.New("nonce: invalid token")
	ErrExpired  = errors.New("nonce: token expired")
	ErrMismatch = errors.New("nonce: token issued for a different action")
)

type claims struct {
	Action   string `json:"action"`
	SiteID   string `json:"siteId"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret []byte, ttl time.Duration, now func() time.Time) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Authenticator{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    now,
	}
}

func (a *Authenticator) Issue(action, siteID string) (string, error) {
	if strings.TrimSpace(action) == "" {
		return "", errors.New("nonce: action name required")
	}

	nowTime := a.now().UTC()
	payload, err := json.Marshal(claims{
		Action:   action,
		SiteID:   siteID,
		IssuedAt: nowTime.Unix(),
		Expires:  nowTime.Add(a.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, a.secret)
	if _, err := mac.Write(payload); err != nil {
		return "", err
	}
	signature := mac.Sum(nil)

	payloadPart := base64.RawURLEncoding.EncodeToString(payload)
	sigPart := base64.RawURLEncoding.EncodeToString(signature)

	return fmt.Sprintf("%s.%s", payloadPart, sigPart), nil
}

// Verify checks the signature, the expiry, and that the token was minted for
// the named action. It returns the site the token was issued for.
func (a *Authenticator) Verify(token, action string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmpty
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", ErrInvalid
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: decode payload: %v", ErrInvalid, err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: decode signature: %v", ErrInvalid, err)
	}

	mac := hmac.New(sha256.New, a.secret)
	if _, err := mac.Write(payload); err != nil {
		return "", err
	}

	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", fmt.Errorf("%w: signature mismatch", ErrInvalid)
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", fmt.Errorf("%w: unmarshal claims: %v", ErrInvalid, err)
	}

	if c.Action != action {
		return "", ErrMismatch
	}
	if a.now().UTC().Unix() > c.Expires {
		return "", ErrExpired
	}

	return c.SiteID, nil
}
