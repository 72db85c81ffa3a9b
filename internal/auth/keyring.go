package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "quill-cli"
	keyringUser    = "auth-token"
)

// ErrNoToken is returned when no token has been stored yet.
var ErrNoToken = errors.New("no stored token")

var (
	// fallbackMode indicates the system keyring is unavailable (headless
	// systems) and the token lives in a 0600 file instead.
	fallbackMode    bool
	fallbackModeMu  sync.RWMutex
	fallbackChecked bool
)

// Store persists the session token in the system keyring, falling back to
// a file under ~/.quill when no keyring is available.
type Store struct{}

// NewStore creates a keyring-backed token store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(token string) error {
	if checkKeyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, token); err != nil {
			return fmt.Errorf("failed to store token in keyring: %w", err)
		}
		return nil
	}

	return storeFallbackToken(token)
}

func (s *Store) Load() (string, error) {
	if !isFallbackMode() && checkKeyringAvailable() {
		token, err := keyring.Get(keyringService, keyringUser)
		if err != nil {
			return "", ErrNoToken
		}
		return token, nil
	}

	token, err := retrieveFallbackToken()
	if err != nil {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear removes the stored token from both locations. Missing tokens are
// not an error, so Clear is idempotent.
func (s *Store) Clear() error {
	var keyringErr, fallbackErr error

	if !isFallbackMode() {
		keyringErr = keyring.Delete(keyringService, keyringUser)
		if errors.Is(keyringErr, keyring.ErrNotFound) {
			keyringErr = nil
		}
	}

	fallbackErr = deleteFallbackToken()

	if keyringErr != nil && fallbackErr != nil {
		return fmt.Errorf("failed to clear token from keyring and fallback")
	}

	return nil
}

// StorageMode returns a string describing where the token is kept.
func (s *Store) StorageMode() string {
	checkKeyringAvailable()

	if isFallbackMode() {
		return "file-based (keyring unavailable)"
	}
	return "system-keyring"
}

// checkKeyringAvailable tests if the system keyring is usable.
func checkKeyringAvailable() bool {
	fallbackModeMu.Lock()
	defer fallbackModeMu.Unlock()

	if fallbackChecked {
		return !fallbackMode
	}

	testKey := "quill-keyring-test"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		fallbackMode = true
		fallbackChecked = true
		return false
	}

	_ = keyring.Delete(keyringService, testKey)
	fallbackChecked = true
	return true
}

func isFallbackMode() bool {
	fallbackModeMu.RLock()
	defer fallbackModeMu.RUnlock()
	return fallbackMode
}

// Fallback file operations for headless systems.

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quill", ".session"), nil
}

func storeFallbackToken(token string) error {
	path, err := fallbackPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write fallback token: %w", err)
	}

	return nil
}

func retrieveFallbackToken() (string, error) {
	path, err := fallbackPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

func deleteFallbackToken() error {
	path, err := fallbackPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
