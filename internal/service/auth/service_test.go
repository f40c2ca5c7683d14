package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	internaljwt "avatar-widget-backend/internal/jwt"
	"avatar-widget-backend/internal/model"
)

type memoryRepository struct {
	mu     sync.Mutex
	admins map[string]model.AdminItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		admins: make(map[string]model.AdminItem),
	}
}

func (m *memoryRepository) CreateAdmin(ctx context.Context, admin model.AdminItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[admin.Email] = admin
	return nil
}

func (m *memoryRepository) GetAdminByEmail(ctx context.Context, email string) (model.AdminItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[email]
	if !ok {
		return model.AdminItem{}, ErrNotFound
	}
	return admin, nil
}

func setupJWT(t *testing.T) {
	t.Helper()

	original := createTokenWithRefresh
	internaljwt.RoleSecrets[internaljwt.RoleAdmin] = "test-secret"
	SetTokenIssuer(func(admin internaljwt.Admin, role internaljwt.Role, validUntil int64) (internaljwt.TokenResponse, error) {
		token, err := internaljwt.CreateToken(admin, role, validUntil)
		if err != nil {
			return internaljwt.TokenResponse{}, err
		}
		return internaljwt.TokenResponse{
			AccessToken: token,
		}, nil
	})

	t.Cleanup(func() {
		SetTokenIssuer(original)
	})
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	result, err := svc.Register(context.Background(), RegisterParams{
		SiteID:   "site-1",
		Email:    "Owner@Example.com",
		Name:     "Owner",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Admin.Email != "owner@example.com" {
		t.Fatalf("expected normalized email, got %s", result.Admin.Email)
	}
	if result.Admin.PasswordHash == "" || result.Admin.PasswordHash == "secret" {
		t.Fatalf("expected hashed password, got %q", result.Admin.PasswordHash)
	}
	if result.Tokens.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.Register(context.Background(), RegisterParams{
		SiteID: "site-1",
		Email:  "owner@example.com",
		Name:   "Owner",
	})
	if err == nil {
		t.Fatal("expected validation error for missing password")
	}

	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected service error, got %T", err)
	}
	if svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %s", svcErr.Code)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	params := RegisterParams{
		SiteID:   "site-1",
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "secret",
	}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("register error: %v", err)
	}

	_, err := svc.Register(context.Background(), params)
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.Register(context.Background(), RegisterParams{
		SiteID:   "site-1",
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginParams{
		Email:    "owner@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Admin.SiteID != "site-1" {
		t.Fatalf("expected siteId site-1, got %s", result.Admin.SiteID)
	}

	_, err = svc.Login(context.Background(), LoginParams{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	_, err := svc.Login(context.Background(), LoginParams{
		Email:    "nobody@example.com",
		Password: "secret",
	})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestIdentityFromAuthorizationHeader(t *testing.T) {
	setupJWT(t)
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	result, err := svc.Register(context.Background(), RegisterParams{
		SiteID:   "site-1",
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	identity, err := svc.IdentityFromAuthorizationHeader("Bearer " + result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.SiteID != "site-1" || identity.Email != "owner@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := svc.IdentityFromAuthorizationHeader(""); err == nil {
		t.Fatal("expected error for missing header")
	}
	if _, err := svc.IdentityFromAuthorizationHeader("Token abc"); err == nil {
		t.Fatal("expected error for malformed header")
	}
	if _, err := svc.IdentityFromAuthorizationHeader("Bearer not-a-token"); err == nil {
		t.Fatal("expected error for invalid token")
	}
}
