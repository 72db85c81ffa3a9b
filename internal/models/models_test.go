package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, Status("Deleted").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTogglePin(t *testing.T) {
	tests := []struct {
		from, want Status
	}{
		{StatusActive, StatusPinned},
		{StatusPinned, StatusActive},
		{StatusArchived, StatusPinned},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.TogglePin(), "toggle pin from %s", tt.from)
	}
}

func TestStatusToggleArchive(t *testing.T) {
	tests := []struct {
		from, want Status
	}{
		{StatusActive, StatusArchived},
		{StatusArchived, StatusActive},
		{StatusPinned, StatusArchived},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.ToggleArchive(), "toggle archive from %s", tt.from)
	}
}

func TestNoteHasTag(t *testing.T) {
	n := Note{
		ID:    1,
		Title: "Groceries",
		Tags: []Tag{
			{ID: 1, Name: "home", Color: "#aabbcc"},
			{ID: 4, Name: "errands", Color: "#ddeeff"},
		},
	}

	assert.True(t, n.HasTag(1))
	assert.True(t, n.HasTag(4))
	assert.False(t, n.HasTag(2))
	assert.False(t, Note{}.HasTag(1))
}

func TestNoteUnmarshalWireFormat(t *testing.T) {
	payload := `{
		"note_id": 42,
		"user_id": 7,
		"title": "Report",
		"content": "Quarterly numbers",
		"status": "Pinned",
		"created_date": "2026-01-05T09:30:00Z",
		"last_modified": "2026-01-06T10:00:00Z",
		"tags": [{"tag_id": 2, "tag_name": "work", "color": "#ff0000"}]
	}`

	var n Note
	require.NoError(t, json.Unmarshal([]byte(payload), &n))

	assert.Equal(t, int64(42), n.ID)
	assert.Equal(t, "Report", n.Title)
	assert.Equal(t, StatusPinned, n.Status)
	require.Len(t, n.Tags, 1)
	assert.Equal(t, "work", n.Tags[0].Name)
	assert.True(t, n.LastModified.After(n.CreatedDate))
}
