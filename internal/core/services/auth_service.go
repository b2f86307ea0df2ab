package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"esolve-collections/internal/adapters/persistence/repositories"
	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/pkg/credential"
	"esolve-collections/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Persisted session keys
const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// AuthService validates logins against the account directory and issues
// the mock session credential
type AuthService struct {
	directory  *Directory
	codec      *credential.Codec
	kv         repositories.KeyValueStore
	loginDelay time.Duration
	metrics    *metrics.Metrics
}

// NewAuthService creates a new auth service
func NewAuthService(
	directory *Directory,
	codec *credential.Codec,
	kv repositories.KeyValueStore,
	loginDelay time.Duration,
	m *metrics.Metrics,
) *AuthService {
	return &AuthService{
		directory:  directory,
		codec:      codec,
		kv:         kv,
		loginDelay: loginDelay,
		metrics:    m,
	}
}

// LoginResult represents a successful login
type LoginResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login checks email and password and issues a credential.
// It does not persist anything; that is the session's job.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if s.loginDelay > 0 {
		timer := time.NewTimer(s.loginDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	user, err := s.directory.Authenticate(email, pass)
	if err != nil {
		s.metrics.ObserveLogin("invalid_credentials")
		zap.L().Debug("Login rejected")
		return nil, err
	}

	token, expiresAt, err := s.codec.Issue(user.ID)
	if err != nil {
		s.metrics.ObserveLogin("error")
		return nil, err
	}
	user.Token = token

	s.metrics.ObserveLogin("success")
	zap.L().Info("User logged in", zap.String("user_id", user.ID), zap.String("email", user.Email))

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout clears the persisted credential and user. It always succeeds;
// persistence failures are logged.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		zap.L().Warn("Failed to clear persisted session", zap.Error(err))
	}
}

// ValidateCredential reports whether token decodes and has not expired
func (s *AuthService) ValidateCredential(token string) bool {
	return s.codec.Valid(token)
}

// CurrentUser reads the persisted user record. Missing or malformed
// records yield nil.
func (s *AuthService) CurrentUser(ctx context.Context) *domain.User {
	raw, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			zap.L().Warn("Failed to read persisted user", zap.Error(err))
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		zap.L().Warn("Persisted user is malformed", zap.Error(err))
		return nil
	}
	if user.ID == "" {
		zap.L().Warn("Persisted user has no id")
		return nil
	}
	return &user
}

// Authenticate resolves the directory user for a request credential.
// Only the credential currently persisted for the session is accepted, so
// tokens that were never issued, or were cleared by a logout or a newer
// login, are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		if errors.Is(err, credential.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	held, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			zap.L().Warn("Failed to read persisted credential", zap.Error(err))
		}
		return nil, domain.ErrTokenInvalid
	}
	if held != token {
		return nil, domain.ErrTokenInvalid
	}

	user, ok := s.directory.ByID(claims.UserID)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	user.Token = token
	return user, nil
}
