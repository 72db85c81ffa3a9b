// Package notes holds the per-session cache of notes, tags and stats, the
// filter engine over it, and the mutation commands that refresh it.
//
// The cache is only ever replaced wholesale: every successful mutation is
// followed by a full reload, so the displayed state always matches server
// truth and no optimistic-update reconciliation is needed.
package notes

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/quillbox/quill-cli/internal/api"
	"github.com/quillbox/quill-cli/internal/models"
)

// ValidationError is a client-side rejection raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Engine owns the in-memory collections for the current session.
type Engine struct {
	client *api.Client
	logger *zap.Logger
	userID int64

	mu       sync.RWMutex
	notes    []models.Note
	tags     []models.Tag
	stats    *models.UserStats
	listOpts api.ListNotesOptions
}

// NewEngine creates an engine scoped to the given user's session.
func NewEngine(client *api.Client, userID int64, logger *zap.Logger) *Engine {
	return &Engine{
		client: client,
		logger: logger,
		userID: userID,
	}
}

// SetListOptions sets the server-side sort applied by every subsequent
// reload, including the automatic reloads after mutations.
func (e *Engine) SetListOptions(opts api.ListNotesOptions) {
	e.mu.Lock()
	e.listOpts = opts
	e.mu.Unlock()
}

// Reload fetches notes, tags and stats concurrently and replaces each cached
// collection in full. The three fetches succeed or fail independently: one
// failing is logged and leaves that section stale, without affecting the
// others. Reload never returns an error.
func (e *Engine) Reload() {
	e.mu.RLock()
	opts := e.listOpts
	e.mu.RUnlock()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		notes, err := e.client.ListNotes(opts)
		if err != nil {
			e.logger.Warn("failed to fetch notes", zap.Error(err))
			return
		}
		e.mu.Lock()
		e.notes = notes
		e.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		tags, err := e.client.ListTags()
		if err != nil {
			e.logger.Warn("failed to fetch tags", zap.Error(err))
			return
		}
		e.mu.Lock()
		e.tags = tags
		e.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		stats, err := e.client.GetStats(e.userID)
		if err != nil {
			e.logger.Warn("failed to fetch stats", zap.Error(err))
			return
		}
		e.mu.Lock()
		e.stats = stats
		e.mu.Unlock()
	}()

	wg.Wait()
}

// Notes returns the cached notes in server order. The returned slice is a
// copy; only Reload writes to the cache.
func (e *Engine) Notes() []models.Note {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Note(nil), e.notes...)
}

// Tags returns the cached tag catalog. The returned slice is a copy.
func (e *Engine) Tags() []models.Tag {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.Tag(nil), e.tags...)
}

// Stats returns the cached aggregate counters, or nil if never fetched.
func (e *Engine) Stats() *models.UserStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// Note looks up a cached note by ID.
func (e *Engine) Note(id int64) (models.Note, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, n := range e.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Filter returns the cached notes matching the criteria, preserving cache
// order. It never mutates the cache.
func (e *Engine) Filter(c Criteria) []models.Note {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]models.Note, 0, len(e.notes))
	for _, n := range e.notes {
		if c.Matches(n) {
			matched = append(matched, n)
		}
	}
	return matched
}

// Create creates a note and reloads the cache. A blank title is rejected
// locally before any network call.
func (e *Engine) Create(title, content string, tagIDs []int64) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	note, err := e.client.CreateNote(title, content, tagIDs)
	if err != nil {
		return nil, err
	}

	e.Reload()
	return note, nil
}

// Update rewrites an existing note's title, content and tag set, then
// reloads the cache. Same local validation as Create.
func (e *Engine) Update(id int64, title, content string, tagIDs []int64) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	note, err := e.client.UpdateNote(id, title, content, tagIDs)
	if err != nil {
		return nil, err
	}

	e.Reload()
	return note, nil
}

// SetStatus issues a partial update of only the status field and reloads
// the cache on success.
func (e *Engine) SetStatus(id int64, status models.Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", status)}
	}

	if err := e.client.UpdateNoteStatus(id, status); err != nil {
		return err
	}

	e.Reload()
	return nil
}

// TogglePin moves the note through the pin transition table.
func (e *Engine) TogglePin(id int64) (models.Status, error) {
	return e.toggle(id, models.Status.TogglePin)
}

// ToggleArchive moves the note through the archive transition table.
func (e *Engine) ToggleArchive(id int64) (models.Status, error) {
	return e.toggle(id, models.Status.ToggleArchive)
}

func (e *Engine) toggle(id int64, transition func(models.Status) models.Status) (models.Status, error) {
	note, ok := e.Note(id)
	if !ok {
		return "", fmt.Errorf("note %d not found", id)
	}

	next := transition(note.Status)
	if err := e.SetStatus(id, next); err != nil {
		return "", err
	}
	return next, nil
}

// Delete removes a note and reloads the cache. Callers must have obtained
// the user's confirmation before calling.
func (e *Engine) Delete(id int64) error {
	if err := e.client.DeleteNote(id); err != nil {
		return err
	}

	e.Reload()
	return nil
}
