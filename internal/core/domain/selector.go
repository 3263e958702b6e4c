package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// SelectorKind identifies how a job finds its source page.
type SelectorKind string

// Selector kinds.
const (
	// SelectIdentity copies the configured source page.
	SelectIdentity SelectorKind = "identity"
	// SelectDaily renders the source title from a date pattern for the displayed day.
	SelectDaily SelectorKind = "daily"
	// SelectDayIndexed reads the source title from a day-keyed parameter of a template on a
	// month-indexed page.
	SelectDayIndexed SelectorKind = "dayIndexed"
)

// ContentSelector is a tagged variant: only the fields of Kind are meaningful.
//
// Patterns accept the placeholders {day}, {dayOrdinal}, {dd}, {month}, {Month} and {year}.
type ContentSelector struct {
	Kind SelectorKind

	// TitlePattern is the source title pattern of a daily selector.
	TitlePattern string
	// PrecacheDays is how many days ahead edits to future daily sources are expanded
	// into the cache. Zero disables pre-caching.
	PrecacheDays int

	// IndexPattern is the title pattern of the month-indexed page.
	IndexPattern string
	// Template is the name of the template holding the day-keyed parameters.
	Template string
	// ParamPattern is the parameter name pattern, usually "{dd}a".
	ParamPattern string
	// SourcePrefix is prepended to the selected value to obtain the source title.
	SourcePrefix string
	// Optional slots fall back to Placeholder when no value is set for the day.
	Optional    bool
	Placeholder string
	// Precache enables pre-caching of edited pages under SourcePrefix.
	Precache bool
}

// Dated reports whether the resolved source depends on the displayed day.
func (s ContentSelector) Dated() bool {
	return s.Kind == SelectDaily || s.Kind == SelectDayIndexed
}

// Validate checks the fields required by the selector kind.
func (s ContentSelector) Validate() error {
	switch s.Kind {
	case SelectIdentity, "":
		return nil
	case SelectDaily:
		if s.TitlePattern == "" {
			return zerr.Wrap(ErrInvalidSelector, "daily selector requires a title pattern")
		}
		if s.PrecacheDays < 0 {
			return zerr.Wrap(ErrInvalidSelector, "precacheDays must not be negative")
		}
		return nil
	case SelectDayIndexed:
		if s.IndexPattern == "" || s.Template == "" || s.ParamPattern == "" {
			return zerr.Wrap(ErrInvalidSelector, "day-indexed selector requires index, template and param")
		}
		if !strings.Contains(s.ParamPattern, "{") {
			return zerr.With(zerr.Wrap(ErrInvalidSelector, "param pattern must reference the day"),
				"param", s.ParamPattern)
		}
		if s.Optional && s.Placeholder == "" {
			return zerr.Wrap(ErrInvalidSelector, "optional day-indexed selector requires a placeholder")
		}
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrInvalidSelector, "unknown selector kind"), "kind", string(s.Kind))
	}
}

// Resolution is the outcome of running a job's selector for a given day.
type Resolution struct {
	// Source is the page to copy. It is empty when Placeholder is used.
	Source string
	// Placeholder replaces the copy when an optional slot has no value.
	Placeholder string
	// Watch lists the titles whose edits make the job relevant.
	Watch []string
	// Index is the month-indexed page consulted by a day-indexed selector.
	Index string
	Day   time.Time
}

// UsesPlaceholder reports whether the resolution writes the placeholder instead of a copy.
func (r Resolution) UsesPlaceholder() bool {
	return r.Source == ""
}

// Watches reports whether title is one of the watched titles.
func (r Resolution) Watches(title string) bool {
	return slices.Contains(r.Watch, title)
}
