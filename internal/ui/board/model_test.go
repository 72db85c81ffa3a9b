package board

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/models"
	"github.com/quillbox/quill-cli/internal/notes"
)

func newLoadedEngine(t *testing.T) *notes.Engine {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/notes":
			json.NewEncoder(w).Encode(map[string]interface{}{"notes": []models.Note{
				{ID: 1, Title: "Groceries", Status: models.StatusActive,
					Tags: []models.Tag{{ID: 1, Name: "home"}}},
				{ID: 2, Title: "Report", Content: "quarterly numbers", Status: models.StatusPinned,
					Tags: []models.Tag{{ID: 2, Name: "work"}}},
				{ID: 3, Title: "Old plans", Status: models.StatusArchived},
			}})
		case r.URL.Path == "/tags":
			json.NewEncoder(w).Encode(map[string]interface{}{"tags": []models.Tag{
				{ID: 1, Name: "home"}, {ID: 2, Name: "work"},
			}})
		case strings.HasSuffix(r.URL.Path, "/stats"):
			json.NewEncoder(w).Encode(map[string]interface{}{"stats": models.UserStats{TotalNotes: 3}})
		default:
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	}))
	t.Cleanup(srv.Close)

	eng := notes.NewEngine(api.NewClient(srv.URL), 1, zap.NewNop())
	eng.Reload()
	return eng
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestColumnsSplitByStatus(t *testing.T) {
	m := New(newLoadedEngine(t))

	cols := m.columns()
	require.Len(t, cols, 3)
	assert.Len(t, cols[0], 1, "active column")
	assert.Len(t, cols[1], 1, "pinned column")
	assert.Len(t, cols[2], 1, "archived column")
	assert.Equal(t, "Groceries", cols[0][0].Title)
}

func TestSearchNarrowsEveryColumn(t *testing.T) {
	m := New(newLoadedEngine(t))
	m.search.SetValue("report")

	cols := m.columns()
	assert.Empty(t, cols[0])
	require.Len(t, cols[1], 1)
	assert.Equal(t, "Report", cols[1][0].Title)
	assert.Empty(t, cols[2])
}

func TestTagFilterApplies(t *testing.T) {
	m := New(newLoadedEngine(t))
	m.tagIdx = 1 // first tag in the catalog: "home"

	cols := m.columns()
	require.Len(t, cols[0], 1)
	assert.Equal(t, "Groceries", cols[0][0].Title)
	assert.Empty(t, cols[1])
	assert.Empty(t, cols[2])
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := New(newLoadedEngine(t))

	// 'd' arms the pending delete for the selected note.
	next, cmd := m.Update(keyPress('d'))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, int64(1), m.pendingDelete)
	assert.Contains(t, m.notice, "Groceries")

	// Any key other than confirm cancels.
	next, cmd = m.Update(keyPress('x'))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Zero(t, m.pendingDelete)

	// 'd' then 'y' dispatches the delete command.
	next, _ = m.Update(keyPress('d'))
	m = next.(Model)
	next, cmd = m.Update(keyPress('y'))
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Zero(t, m.pendingDelete)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := New(newLoadedEngine(t))

	for i := 0; i < 5; i++ {
		next, _ := m.Update(keyPress('j'))
		m = next.(Model)
	}
	assert.Equal(t, 0, m.row, "single-entry column clamps the cursor")

	for i := 0; i < 5; i++ {
		next, _ := m.Update(keyPress('l'))
		m = next.(Model)
	}
	assert.Equal(t, 2, m.col, "cannot move past the last column")
}

func TestViewRendersColumnsAndCounts(t *testing.T) {
	m := New(newLoadedEngine(t))
	m.width = 120

	view := m.View()
	assert.Contains(t, view, "Active (1)")
	assert.Contains(t, view, "Pinned (1)")
	assert.Contains(t, view, "Archived (1)")
	assert.Contains(t, view, "Groceries")
}
