package domain

import (
	"slices"
	"strings"
	"time"
)

// ExpansionKey identifies one expansion of a source revision.
type ExpansionKey struct {
	Title       string
	RevID       int64
	ContentHash uint64
}

// ExpansionEntry is a persisted expansion. Entries are immutable once stored.
type ExpansionEntry struct {
	Key                 ExpansionKey
	ExpandedCode        string
	Templates           []string
	LastChangedTemplate string
	// LastChangedAt is zero when the expansion has no existing dependency.
	LastChangedAt time.Time
	CreatedAt     time.Time
}

// Result converts the entry into the value returned to callers.
func (e ExpansionEntry) Result(fromCache bool) ExpansionResult {
	return ExpansionResult{
		Code:                e.ExpandedCode,
		Templates:           slices.Clone(e.Templates),
		LastChangedTemplate: e.LastChangedTemplate,
		LastChangedAt:       e.LastChangedAt,
		FromCache:           fromCache,
	}
}

// ExpansionResult is the output of the expansion cache.
type ExpansionResult struct {
	Code                string
	Templates           []string
	LastChangedTemplate string
	LastChangedAt       time.Time
	FromCache           bool
}

// TemplateStamp is the latest edit time of one dependency.
type TemplateStamp struct {
	Title     string
	Timestamp time.Time
}

// DependencySnapshot lists the dependencies of an expansion that exist in the document store.
type DependencySnapshot []TemplateStamp

// Latest returns the most recently edited dependency. Equal timestamps are broken by the
// lexicographically smallest title.
func (s DependencySnapshot) Latest() (TemplateStamp, bool) {
	if len(s) == 0 {
		return TemplateStamp{}, false
	}
	best := s[0]
	for _, stamp := range s[1:] {
		if stamp.Timestamp.After(best.Timestamp) ||
			(stamp.Timestamp.Equal(best.Timestamp) && strings.Compare(stamp.Title, best.Title) < 0) {
			best = stamp
		}
	}
	return best, true
}
