package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/auth"
)

// memoryStore keeps the token in memory for tests.
type memoryStore struct {
	token string
}

func (s *memoryStore) Save(token string) error {
	s.token = token
	return nil
}

func (s *memoryStore) Load() (string, error) {
	if s.token == "" {
		return "", auth.ErrNoToken
	}
	return s.token, nil
}

func (s *memoryStore) Clear() error {
	s.token = ""
	return nil
}

func (s *memoryStore) StorageMode() string {
	return "in-memory"
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL)
}

func TestLoginEstablishesSession(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-1",
			"user":  map[string]interface{}{"user_id": 3, "name": "Ada", "email": "ada@example.com"},
		})
	})

	store := &memoryStore{}
	mgr := NewManager(client, store, zap.NewNop())

	user, err := mgr.Login("ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, mgr.Active())
	assert.Equal(t, "tok-1", store.token)
	assert.Equal(t, "tok-1", client.Token)
}

func TestLoginRejectionIsInvalidCredentials(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})

	store := &memoryStore{}
	mgr := NewManager(client, store, zap.NewNop())

	_, err := mgr.Login("ada@example.com", "wrong")
	require.Error(t, err)

	authErr, ok := err.(*AuthError)
	require.True(t, ok)
	assert.Equal(t, KindInvalidCredentials, authErr.Kind)
	assert.False(t, mgr.Active())
	assert.Empty(t, store.token)
}

func TestLoginNetworkFailureIsNetworkKind(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := api.NewClient(srv.URL)

	mgr := NewManager(client, &memoryStore{}, zap.NewNop())

	_, err := mgr.Login("ada@example.com", "pw")
	require.Error(t, err)

	authErr, ok := err.(*AuthError)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, authErr.Kind)
}

func TestResumeRestoresUser(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"user_id": 9, "name": "Grace", "email": "grace@example.com"},
		})
	})

	store := &memoryStore{token: "tok-9"}
	mgr := NewManager(client, store, zap.NewNop())

	user, err := mgr.Resume()
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.True(t, mgr.Active())
}

func TestResumeWithRejectedTokenTearsDownSession(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token has expired"})
	})

	store := &memoryStore{token: "stale"}
	mgr := NewManager(client, store, zap.NewNop())

	_, err := mgr.Resume()
	require.Error(t, err)

	authErr, ok := err.(*AuthError)
	require.True(t, ok)
	assert.Equal(t, KindSessionExpired, authErr.Kind)
	assert.Empty(t, store.token, "token must be discarded")
	assert.Empty(t, client.Token)
	assert.False(t, mgr.Active())
}

func TestResumeWithoutStoredToken(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:0")
	mgr := NewManager(client, &memoryStore{}, zap.NewNop())

	_, err := mgr.Resume()
	require.Error(t, err)

	authErr, ok := err.(*AuthError)
	require.True(t, ok)
	assert.Equal(t, KindSessionExpired, authErr.Kind)
}

func TestStorageModeComesFromTheStore(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:0")
	mgr := NewManager(client, &memoryStore{}, zap.NewNop())

	assert.Equal(t, "in-memory", mgr.StorageMode())
}

func TestLogoutIsIdempotent(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:0")
	store := &memoryStore{token: "tok"}
	mgr := NewManager(client, store, zap.NewNop())

	mgr.Logout()
	mgr.Logout()

	assert.Empty(t, store.token)
	assert.False(t, mgr.Active())
}
