package models

import (
	"time"
)

// Status is the lifecycle state of a note. A note is always in exactly one
// state; pinning an archived note un-archives it as a side effect.
type Status string

const (
	StatusActive   Status = "Active"
	StatusPinned   Status = "Pinned"
	StatusArchived Status = "Archived"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{StatusActive, StatusPinned, StatusArchived}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPinned, StatusArchived:
		return true
	}
	return false
}

// TogglePin returns the status after a pin/unpin action.
func (s Status) TogglePin() Status {
	switch s {
	case StatusPinned:
		return StatusActive
	case StatusActive, StatusArchived:
		return StatusPinned
	}
	return s
}

// ToggleArchive returns the status after an archive/unarchive action.
func (s Status) ToggleArchive() Status {
	switch s {
	case StatusArchived:
		return StatusActive
	case StatusActive, StatusPinned:
		return StatusArchived
	}
	return s
}

// Note represents a user-authored note as returned by the API.
type Note struct {
	ID           int64     `json:"note_id"`
	UserID       int64     `json:"user_id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       Status    `json:"status"`
	CreatedDate  time.Time `json:"created_date"`
	LastModified time.Time `json:"last_modified"`
	Tags         []Tag     `json:"tags"`
}

// HasTag reports whether the note carries the tag with the given ID.
func (n Note) HasTag(tagID int64) bool {
	for _, t := range n.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// Tag is a named, colored label attachable to many notes.
type Tag struct {
	ID        int64     `json:"tag_id"`
	Name      string    `json:"tag_name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// User is the authenticated account.
type User struct {
	ID        int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// UserStats are the per-user aggregate counters shown on the dashboard.
type UserStats struct {
	UserID          int64      `json:"user_id,omitempty"`
	TotalNotes      int        `json:"total_notes"`
	ActiveNotes     int        `json:"active_notes"`
	PinnedNotes     int        `json:"pinned_notes"`
	ArchivedNotes   int        `json:"archived_notes"`
	TotalActiveTags int        `json:"total_active_tags"`
	LastLoginDate   *time.Time `json:"last_login_date,omitempty"`
}
