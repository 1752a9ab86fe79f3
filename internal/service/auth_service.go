package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/config"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type AuthService interface {
	SignIn(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	SignOut(ctx context.Context, sess session.Session) error
	Me(ctx context.Context, sess session.Session) (*dto.ProfileResponse, error)
}

type authService struct {
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
	sessions    SessionStore
	notifier    *session.Notifier
	cfg         *config.Config
}

func NewAuthService(
	credentials repository.CredentialRepository,
	profiles repository.ProfileRepository,
	sessions SessionStore,
	notifier *session.Notifier,
	cfg *config.Config,
) AuthService {
	return &authService{credentials: credentials, profiles: profiles, sessions: sessions, notifier: notifier, cfg: cfg}
}

var emailValidator = validator.New()

func (s *authService) SignIn(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if emailValidator.Var(email, "required,email") != nil {
		return nil, &AuthError{Code: AuthInvalidEmail}
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &AuthError{Code: AuthUserNotFound}
	}
	if err != nil {
		return nil, &ReadError{Op: "sign in: load credential", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &AuthError{Code: AuthWrongPassword}
	}

	profile, err := s.profiles.FindByID(ctx, cred.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		// identity without a profile: the account was never fully provisioned
		return nil, &AuthError{Code: AuthInvalidCredential}
	}
	if err != nil {
		return nil, &ReadError{Op: "sign in: load profile", Err: err}
	}
	if !profile.Active() {
		return nil, &AuthError{Code: AuthUserDisabled}
	}

	resp, err := s.issue(profile)
	if err != nil {
		return nil, err
	}
	s.publish(profile.ID, session.SignedIn)
	log.Info().Str("user_id", profile.ID.String()).Str("role", profile.Role).Msg("signed in")
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, &AuthError{Code: AuthInvalidCredential}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != TokenRefresh {
		return nil, &AuthError{Code: AuthInvalidCredential}
	}
	userIDStr, _ := claims["user_id"].(string)
	sid, _ := claims["sid"].(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil || sid == "" {
		return nil, &AuthError{Code: AuthInvalidCredential}
	}

	revoked, err := s.sessions.IsRevoked(ctx, sid)
	if err != nil {
		return nil, &ReadError{Op: "refresh: session lookup", Err: err}
	}
	if revoked {
		return nil, &AuthError{Code: AuthInvalidCredential}
	}

	profile, err := s.profiles.FindByID(ctx, uid)
	if err != nil {
		return nil, &AuthError{Code: AuthInvalidCredential}
	}
	if !profile.Active() {
		return nil, &AuthError{Code: AuthUserDisabled}
	}

	// rotate: the old session id dies with the refresh
	if err := s.sessions.Revoke(ctx, sid, s.refreshTTL()); err != nil {
		return nil, &WriteError{Op: "refresh: revoke old session", Err: err}
	}
	return s.issue(profile)
}

func (s *authService) SignOut(ctx context.Context, sess session.Session) error {
	if sess.SessionID == "" {
		return &AuthError{Code: AuthInvalidCredential}
	}
	if err := s.sessions.Revoke(ctx, sess.SessionID, s.refreshTTL()); err != nil {
		return &WriteError{Op: "sign out: revoke session", Err: err}
	}
	s.publish(sess.UserID, session.SignedOut)
	log.Info().Str("user_id", sess.UserID.String()).Msg("signed out")
	return nil
}

func (s *authService) Me(ctx context.Context, sess session.Session) (*dto.ProfileResponse, error) {
	p, err := s.profiles.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, readErr("me: load profile", err)
	}
	resp := profileToResponse(p)
	return &resp, nil
}

func (s *authService) publish(userID uuid.UUID, kind string) {
	if s.notifier != nil {
		s.notifier.Publish(session.Event{UserID: userID, Type: kind})
	}
}

func (s *authService) refreshTTL() time.Duration {
	return time.Duration(s.cfg.JWTRefreshHours) * time.Hour
}

// issue creates a new session id and signs an access/refresh pair for it.
func (s *authService) issue(p *model.Profile) (*dto.LoginResponse, error) {
	sid := uuid.NewString()
	access, err := s.generateToken(p, sid, TokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(p, sid, TokenRefresh, s.refreshTTL())
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         profileToResponse(p),
	}, nil
}

func (s *authService) generateToken(p *model.Profile, sid, typ string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.ID.String(),
		"sid":     sid,
		"typ":     typ,
		"role":    p.Role,
		"email":   p.Email,
		"name":    p.Name,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	if p.TenantID != nil {
		claims["tenant_id"] = p.TenantID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
