package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weightlog/internal/domain"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Owner describes the single account allowed to use the HTTP surface.
type Owner struct {
	Username     string
	PasswordHash string
	// Email is matched against the verified OIDC email claim.
	Email string
}

// AuthService handles owner authentication and session management.
type AuthService struct {
	owner    Owner
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service for owner.
func NewAuthService(owner Owner, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		owner:    owner,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
}

// PasswordEnabled reports whether username/password login is configured.
func (s *AuthService) PasswordEnabled() bool {
	return s.owner.Username != "" && s.owner.PasswordHash != ""
}

// Login checks the owner credentials and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.PasswordEnabled() || !ConstantTimeCompare(username, s.owner.Username) {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.owner.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.createSession(ctx, s.owner.Username)
}

// LoginWithEmail creates a session for an identity already verified by the
// SSO provider. Only the owner's email is accepted.
func (s *AuthService) LoginWithEmail(ctx context.Context, email string) (string, error) {
	if s.owner.Email == "" || !strings.EqualFold(email, s.owner.Email) {
		slog.WarnContext(ctx, "sso login rejected", "email", email)
		return "", domain.ErrInvalidCredentials
	}
	name := s.owner.Username
	if name == "" {
		name = s.owner.Email
	}
	return s.createSession(ctx, name)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession returns the session for token if it exists and has not
// expired. Expired sessions are removed.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// PurgeExpired removes all expired sessions.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) createSession(ctx context.Context, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, username, token, s.now().Add(s.ttl)); err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "session created", "user", username)
	return token, nil
}

// HashPassword returns the bcrypt hash to configure as the owner password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
