// Package board is the interactive dashboard: three status columns over the
// note cache, with live search and tag filtering evaluated client-side.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillbox/quill-cli/internal/models"
	"github.com/quillbox/quill-cli/internal/notes"
)

var (
	statusColors = map[models.Status]lipgloss.Color{
		models.StatusActive:   lipgloss.Color("10"),
		models.StatusPinned:   lipgloss.Color("11"),
		models.StatusArchived: lipgloss.Color("8"),
	}

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// refreshedMsg signals that an engine operation (and its reload) finished.
type refreshedMsg struct{}

// opErrMsg carries a failed mutation's error to the status line.
type opErrMsg struct{ err error }

// Model is the board tea.Model.
type Model struct {
	engine *notes.Engine
	keys   KeyMap

	search    textinput.Model
	searching bool
	tagIdx    int // 0 = all tags, otherwise 1-based index into the catalog

	col, row      int
	pendingDelete int64 // note awaiting delete confirmation, 0 = none

	width, height int
	notice        string
}

// New creates a board over an already-loaded engine.
func New(engine *notes.Engine) Model {
	search := textinput.New()
	search.Placeholder = "search title or content"
	search.Prompt = "/ "
	search.CharLimit = 80

	return Model{
		engine: engine,
		keys:   DefaultKeyMap(),
		search: search,
	}
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m Model) reloadCmd() tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		eng.Reload()
		return refreshedMsg{}
	}
}

func (m Model) togglePinCmd(id int64) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		if _, err := eng.TogglePin(id); err != nil {
			return opErrMsg{err}
		}
		return refreshedMsg{}
	}
}

func (m Model) toggleArchiveCmd(id int64) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		if _, err := eng.ToggleArchive(id); err != nil {
			return opErrMsg{err}
		}
		return refreshedMsg{}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		if err := eng.Delete(id); err != nil {
			return opErrMsg{err}
		}
		return refreshedMsg{}
	}
}

// criteria builds the filter for one status column from current view state.
func (m Model) criteria(status models.Status) notes.Criteria {
	c := notes.Criteria{Status: &status, Search: m.search.Value()}
	if tags := m.engine.Tags(); m.tagIdx > 0 && m.tagIdx <= len(tags) {
		id := tags[m.tagIdx-1].ID
		c.TagID = &id
	}
	return c
}

// columns returns the filtered notes for each status column.
func (m Model) columns() [][]models.Note {
	cols := make([][]models.Note, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		cols[i] = m.engine.Filter(m.criteria(s))
	}
	return cols
}

// selected returns the note under the cursor, if any.
func (m Model) selected() (models.Note, bool) {
	cols := m.columns()
	if m.col >= len(cols) || m.row >= len(cols[m.col]) {
		return models.Note{}, false
	}
	return cols[m.col][m.row], true
}

func (m *Model) clampCursor() {
	cols := m.columns()
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(cols) {
		m.col = len(cols) - 1
	}
	if n := len(cols[m.col]); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshedMsg:
		m.notice = ""
		m.clampCursor()
		return m, nil

	case opErrMsg:
		m.notice = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete only understands confirm or cancel.
	if m.pendingDelete != 0 {
		if key.Matches(msg, m.keys.Confirm) {
			id := m.pendingDelete
			m.pendingDelete = 0
			return m, m.deleteCmd(id)
		}
		m.pendingDelete = 0
		m.notice = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Cancel):
		m.search.SetValue("")
		m.tagIdx = 0
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.CycleTag):
		m.tagIdx = (m.tagIdx + 1) % (len(m.engine.Tags()) + 1)
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.row = 0
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.col++
		m.row = 0
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.TogglePin):
		if n, ok := m.selected(); ok {
			return m, m.togglePinCmd(n.ID)
		}

	case key.Matches(msg, m.keys.ToggleArchive):
		if n, ok := m.selected(); ok {
			return m, m.toggleArchiveCmd(n.ID)
		}

	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			m.pendingDelete = n.ID
			m.notice = fmt.Sprintf("delete %q? press y to confirm", n.Title)
		}
	}

	return m, nil
}

func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 96
	}
	colWidth := width/3 - 4
	if colWidth < 20 {
		colWidth = 20
	}

	cols := m.columns()
	rendered := make([]string, 0, len(cols))
	for i, s := range models.AllStatuses {
		rendered = append(rendered, m.renderColumn(s, cols[i], colWidth, i == m.col))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	var parts []string
	if stats := m.engine.Stats(); stats != nil {
		parts = append(parts, headerStyle.Render(fmt.Sprintf(
			"Quillbox · %d notes (%d active, %d pinned, %d archived), %d tags",
			stats.TotalNotes, stats.ActiveNotes, stats.PinnedNotes,
			stats.ArchivedNotes, stats.TotalActiveTags)))
	} else {
		parts = append(parts, headerStyle.Render("Quillbox"))
	}

	if tags := m.engine.Tags(); m.tagIdx > 0 && m.tagIdx <= len(tags) {
		parts = append(parts, dimStyle.Render("tag: "+tags[m.tagIdx-1].Name))
	}

	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}

	return strings.Join(parts, "  ")
}

func (m Model) renderColumn(status models.Status, col []models.Note, width int, active bool) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColors[status]).
		Render(fmt.Sprintf("%s (%d)", status, len(col)))

	lines := []string{title}
	for i, n := range col {
		line := truncate(n.Title, width-2)
		if len(n.Tags) > 0 {
			names := make([]string, 0, len(n.Tags))
			for _, t := range n.Tags {
				names = append(names, t.Name)
			}
			line += " " + dimStyle.Render("["+strings.Join(names, ",")+"]")
		}
		if active && i == m.row {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(col) == 0 {
		lines = append(lines, dimStyle.Render("(none)"))
	}

	style := columnStyle.Width(width)
	if active {
		style = style.BorderForeground(statusColors[status])
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	if m.notice != "" {
		return warnStyle.Render(m.notice)
	}
	return dimStyle.Render("↑/↓ move · ←/→ column · / search · t tag · p pin · a archive · d delete · r reload · q quit")
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
