package domain

import (
	"slices"
	"time"
)

// StateVersion is the current version of the persisted state layout.
const StateVersion = 1

// Selection caches the outcome of a day-indexed selector for one day.
type Selection struct {
	Day    string `json:"day"`
	Source string `json:"source,omitzero"`
}

// SyncCursor is the persisted progress of one job.
type SyncCursor struct {
	// Token is the change feed continuation token of the last completed attempt.
	Token string `json:"token,omitzero"`
	// LastEdit is the latest relevant edit observed on the feed.
	LastEdit time.Time `json:"last_edit,omitzero"`
	// Source is the source resolved by the last completed attempt.
	Source    string     `json:"source,omitzero"`
	Selection *Selection `json:"selection,omitempty"`
	// Failure is the displayable message of the last surfaced failure, re-reported while the
	// job is idle or settling.
	Failure string `json:"failure,omitzero"`
}

// State is the persisted state of the runner.
type State struct {
	Version int                   `json:"version"`
	Jobs    map[string]SyncCursor `json:"jobs"`
	// Precache is a stack of sources waiting to be expanded ahead of their display day.
	Precache       []string `json:"precache,omitempty"`
	ReportedErrors string   `json:"reported_errors,omitzero"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Version: StateVersion,
		Jobs:    make(map[string]SyncCursor),
	}
}

// Cursor returns the cursor of the named job, or a zero cursor.
func (s *State) Cursor(job string) SyncCursor {
	return s.Jobs[job]
}

// SetCursor stores the cursor of the named job.
func (s *State) SetCursor(job string, c SyncCursor) {
	if s.Jobs == nil {
		s.Jobs = make(map[string]SyncCursor)
	}
	s.Jobs[job] = c
}

// PushPrecache adds title on top of the pre-cache stack unless it is already queued.
func (s *State) PushPrecache(title string) {
	if slices.Contains(s.Precache, title) {
		return
	}
	s.Precache = append(s.Precache, title)
}
