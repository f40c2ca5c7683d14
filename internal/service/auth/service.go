package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"avatar-widget-backend/internal/database"
	internaljwt "avatar-widget-backend/internal/jwt"
	"avatar-widget-backend/internal/model"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh

// SetTokenIssuer swaps the token factory; tests use it to avoid a live
// redis connection.
func SetTokenIssuer(issuer func(internaljwt.Admin, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
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

// Register creates the admin account that owns a site's widget settings.
// Admins are keyed by email, so a second registration with the same address
// is rejected rather than silently overwritten.
func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)
	name := strings.TrimSpace(params.Name)
	siteID := strings.TrimSpace(params.SiteID)

	if email == "" || password == "" || name == "" || siteID == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	if _, err := s.repo.GetAdminByEmail(ctx, email); err == nil {
		return AuthResult{}, newError(ErrorCodeConflict, "email already registered", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to check existing admin", err)
	}

	newAdmin, err := internaljwt.NewAdmin(internaljwt.RegisterAdmin{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to prepare admin", err)
	}

	newAdmin.Id = uuid.NewString()
	newAdmin.SiteID = siteID

	admin := model.AdminItem{
		AdminID:      newAdmin.Id,
		SiteID:       siteID,
		Email:        email,
		Name:         name,
		PasswordHash: newAdmin.PasswordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to save admin", err)
	}

	tokens, err := createTokenWithRefresh(newAdmin, internaljwt.RoleAdmin, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		Admin:  admin,
		Tokens: tokens,
	}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "failed to fetch admin", err)
	}

	if !internaljwt.ValidatePassword(admin.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	jwtAdmin := internaljwt.Admin{
		Id:           admin.AdminID,
		SiteID:       admin.SiteID,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
	}

	tokens, err := createTokenWithRefresh(jwtAdmin, internaljwt.RoleAdmin, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{
		Admin:  admin,
		Tokens: tokens,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (internaljwt.TokenResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return internaljwt.TokenResponse{}, newError(ErrorCodeValidation, "refresh token is required", nil)
	}

	accessToken, err := internaljwt.RefreshToken(refreshToken, internaljwt.RoleAdmin)
	if err != nil {
		return internaljwt.TokenResponse{}, newError(ErrorCodeUnauthorized, "invalid refresh token", err)
	}

	return internaljwt.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) IdentityFromAuthorizationHeader(header string) (Identity, error) {
	authHeader := strings.TrimSpace(header)
	if authHeader == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "missing authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return s.identityFromToken(token)
}

func (s *Service) identityFromToken(token string) (Identity, error) {
	if token == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "empty token", nil)
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleAdmin)
	if err != nil {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", err)
	}

	adminID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	siteID, _ := claims["siteId"].(string)

	if adminID == "" || siteID == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "token missing identifiers", nil)
	}

	return Identity{
		AdminID: adminID,
		SiteID:  siteID,
		Email:   email,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
