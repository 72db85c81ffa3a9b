package notes

import (
	"strings"

	"github.com/quillbox/quill-cli/internal/models"
)

// Criteria is the transient filter tuple derived from view state. Nil/empty
// fields skip their predicate; set fields combine conjunctively.
type Criteria struct {
	Status *models.Status
	TagID  *int64
	Search string
}

// Empty reports whether every predicate is unset.
func (c Criteria) Empty() bool {
	return c.Status == nil && c.TagID == nil && c.Search == ""
}

// Matches evaluates the conjunction of the set predicates against a note.
func (c Criteria) Matches(n models.Note) bool {
	if c.Status != nil && n.Status != *c.Status {
		return false
	}

	if c.TagID != nil && !n.HasTag(*c.TagID) {
		return false
	}

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		title := strings.ToLower(n.Title)
		content := strings.ToLower(n.Content)
		if !strings.Contains(title, needle) && !strings.Contains(content, needle) {
			return false
		}
	}

	return true
}
