package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"esolve-collections/internal/adapters/persistence/repositories"
	"esolve-collections/internal/core/domain"

	"go.uber.org/zap"
)

// ActivityRecorder appends entries to the global activity log
type ActivityRecorder interface {
	AddActivity(input ActivityInput) domain.Activity
}

// SessionState is a read-only snapshot of the session
type SessionState struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
}

// SessionService holds the dashboard's signed-in session and keeps the
// persisted credential in step with it. One instance exists per process.
type SessionService struct {
	mu         sync.Mutex
	auth       *AuthService
	kv         repositories.KeyValueStore
	activities ActivityRecorder

	user          *domain.User
	token         string
	authenticated bool
	loading       bool
	initialized   bool

	// generation increases on every login and logout; a login only
	// applies its result if no newer call started while it was running.
	generation uint64
}

// NewSessionService creates a session in the loading state.
// activities may be nil.
func NewSessionService(auth *AuthService, kv repositories.KeyValueStore, activities ActivityRecorder) *SessionService {
	return &SessionService{
		auth:       auth,
		kv:         kv,
		activities: activities,
		loading:    true,
	}
}

// Initialize restores the session from persisted state. It runs once;
// later calls return immediately. An invalid or expired credential clears
// the persisted state and leaves the session signed out.
func (s *SessionService) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true
	s.loading = false

	token, err := s.kv.Get(ctx, TokenKey)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		zap.L().Warn("Failed to read persisted credential", zap.Error(err))
	}
	user := s.auth.CurrentUser(ctx)

	if err == nil && token != "" && user != nil && s.auth.ValidateCredential(token) {
		user.Token = token
		s.user = user
		s.token = token
		s.authenticated = true
		zap.L().Info("Session restored", zap.String("user_id", user.ID))
		return
	}

	s.clearPersisted(ctx)
	s.user = nil
	s.token = ""
	s.authenticated = false
	zap.L().Info("No valid persisted session")
}

// Login signs in through the auth service and persists the credential.
// On failure the session is left unchanged. If another login or a logout
// starts before this one finishes, the result is discarded and
// domain.ErrLoginSuperseded is returned.
func (s *SessionService) Login(ctx context.Context, email, pass string) (*domain.User, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	result, err := s.auth.Login(ctx, email, pass)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		zap.L().Info("Discarding superseded login", zap.String("user_id", result.User.ID))
		return nil, domain.ErrLoginSuperseded
	}

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}

	s.user = result.User
	s.token = result.Token
	s.authenticated = true
	s.loading = false

	s.record(ActivityInput{
		UserID:   result.User.ID,
		UserName: result.User.Name,
		Action:   "Logged in",
		Details:  fmt.Sprintf("%s signed in", result.User.Email),
		Type:     domain.ActivityLogin,
	})

	user := *result.User
	return &user, nil
}

// Logout signs out. Session state is cleared whatever the auth service
// does, and any in-flight login is invalidated.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.signOut(ctx, "Logged out", "signed out")
}

// Revalidate checks the current credential and forces a logout when it has
// expired. It reports whether the session is still authenticated.
func (s *SessionService) Revalidate(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return false
	}
	if s.auth.ValidateCredential(s.token) {
		return true
	}

	zap.L().Info("Session credential expired", zap.String("user_id", s.user.ID))
	s.generation++
	s.signOut(ctx, "Session expired", "credential expired, signed out")
	return false
}

// State returns a snapshot of the session
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		Authenticated: s.authenticated,
		Loading:       s.loading,
	}
	if s.user != nil {
		user := *s.user
		state.User = &user
	}
	return state
}

// signOut must be called with s.mu held
func (s *SessionService) signOut(ctx context.Context, action, details string) {
	prev := s.user

	s.auth.Logout(ctx)
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.loading = false

	if prev != nil {
		s.record(ActivityInput{
			UserID:   prev.ID,
			UserName: prev.Name,
			Action:   action,
			Details:  fmt.Sprintf("%s %s", prev.Email, details),
			Type:     domain.ActivityLogout,
		})
	}
}

// persist writes credential and user together; a partial write is rolled back
func (s *SessionService) persist(ctx context.Context, result *LoginResult) error {
	userJSON, err := json.Marshal(result.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.kv.Set(ctx, TokenKey, result.Token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(userJSON)); err != nil {
		s.clearPersisted(ctx)
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

func (s *SessionService) clearPersisted(ctx context.Context) {
	if err := s.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		zap.L().Warn("Failed to clear persisted session", zap.Error(err))
	}
}

func (s *SessionService) record(input ActivityInput) {
	if s.activities == nil {
		return
	}
	s.activities.AddActivity(input)
}
