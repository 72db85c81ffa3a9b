package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbox/quill-cli/internal/models"
)

func TestListNotesSendsBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]interface{}{"notes": []models.Note{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok-123")

	_, err := client.ListNotes(ListNotesOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestListNotesPassesSortParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]interface{}{"notes": []models.Note{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListNotes(ListNotesOptions{SortBy: "title", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "order=asc&sort_by=title", gotQuery)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Title is required"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateNote("x", "", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok, "expected *api.Error, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Title is required", apiErr.Error())
}

func TestErrorFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.DeleteNote(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&Error{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&Error{StatusCode: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(&Error{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsUnauthorized(assert.AnError))
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-456",
			"user":  map[string]interface{}{"user_id": 7, "name": "Ada", "email": "ada@example.com"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Login("ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-456", resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "Ada", resp.User.Name)
}

func TestUpdateNoteStatusPatchesOnlyStatus(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"message": "Note status updated to Active"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.UpdateNoteStatus(2, models.StatusActive))
	assert.Equal(t, "PATCH", gotMethod)
	assert.Equal(t, "/notes/2/status", gotPath)
	assert.Equal(t, map[string]string{"status": "Active"}, gotBody)
}
