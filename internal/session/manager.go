package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/models"
)

// ErrorKind distinguishes why authentication failed.
type ErrorKind int

const (
	// KindInvalidCredentials means the API rejected the email/password.
	KindInvalidCredentials ErrorKind = iota
	// KindNetwork means the API could not be reached.
	KindNetwork
	// KindSessionExpired means a stored token no longer resolves to a user.
	KindSessionExpired
)

// AuthError is a failed login, registration or session resolution.
type AuthError struct {
	Kind ErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindNetwork:
		return "could not reach the server"
	case KindSessionExpired:
		return "session expired, please log in again"
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TokenStore persists the auth token across runs.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
	StorageMode() string
}

// Manager owns the auth token and current-user identity for one run.
type Manager struct {
	client *api.Client
	store  TokenStore
	logger *zap.Logger

	user *models.User
}

// NewManager creates a session manager around the given API client and
// token store.
func NewManager(client *api.Client, store TokenStore, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Login exchanges credentials for a token, persists it and records the
// current user. On failure no state changes.
func (m *Manager) Login(email, password string) (*models.User, error) {
	resp, err := m.client.Login(email, password)
	if err != nil {
		return nil, classifyLoginError(err)
	}

	m.establish(resp)
	return m.user, nil
}

// Register creates an account and then behaves exactly like Login.
func (m *Manager) Register(name, email, password string) (*models.User, error) {
	resp, err := m.client.Register(name, email, password)
	if err != nil {
		return nil, classifyLoginError(err)
	}

	m.establish(resp)
	return m.user, nil
}

// Resume restores a previous session from the stored token. Any failure
// tears the session down, exactly like Logout.
func (m *Manager) Resume() (*models.User, error) {
	token, err := m.store.Load()
	if err != nil {
		return nil, &AuthError{Kind: KindSessionExpired, Err: err}
	}

	m.client.SetToken(token)
	user, err := m.client.Me()
	if err != nil {
		m.logger.Info("stored session no longer valid, logging out", zap.Error(err))
		m.Logout()
		return nil, &AuthError{Kind: KindSessionExpired, Err: err}
	}

	m.user = user
	return user, nil
}

// Logout discards the token and the current user. Idempotent.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	m.client.SetToken("")
	m.user = nil
}

// User returns the current user, or nil when unauthenticated.
func (m *Manager) User() *models.User {
	return m.user
}

// Active reports whether a session is established.
func (m *Manager) Active() bool {
	return m.user != nil
}

// StorageMode describes where the token is persisted.
func (m *Manager) StorageMode() string {
	return m.store.StorageMode()
}

func (m *Manager) establish(resp *api.AuthResponse) {
	m.client.SetToken(resp.Token)
	if err := m.store.Save(resp.Token); err != nil {
		// The in-memory session still works; only persistence is lost.
		m.logger.Warn("failed to persist token", zap.Error(err))
	}
	user := resp.User
	m.user = &user
}

// classifyLoginError separates credential rejection from connectivity
// problems so callers can report them distinctly.
func classifyLoginError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if api.IsUnauthorized(err) || apiErr.StatusCode < 500 {
			return &AuthError{Kind: KindInvalidCredentials, Err: err}
		}
	}
	return &AuthError{Kind: KindNetwork, Err: fmt.Errorf("auth request failed: %w", err)}
}
