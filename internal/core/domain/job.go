package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultQuietPeriod is the settle window applied to edits of the source.
	DefaultQuietPeriod = 5 * time.Minute
	// DefaultDependencyQuietPeriod is how long a dependency edited after the source blocks
	// the copy.
	DefaultDependencyQuietPeriod = time.Hour
	// DefaultCacheTTL bounds the age of reusable expansion cache entries.
	DefaultCacheTTL = 360 * 24 * time.Hour
)

// MirrorJob is a configured (source, target) pair kept in sync by the runner.
type MirrorJob struct {
	Name   string
	Source string
	Target string
	// Upstream lists extra pages whose edits make the job relevant.
	Upstream []string
	Selector ContentSelector

	QuietPeriod time.Duration
	// DependencyQuietPeriod is the window during which a dependency edited after the source
	// blocks the copy, bounds included.
	DependencyQuietPeriod time.Duration
	// MaxSourceLength limits the transcluded source size in bytes. Zero disables the check.
	MaxSourceLength int
	CacheTTL        time.Duration
	// Summary overrides the localized edit summary. A %s verb receives the source link.
	Summary string
}

// WithDefaults returns a copy of the job with unset durations replaced by their defaults.
func (j MirrorJob) WithDefaults() MirrorJob {
	if j.QuietPeriod <= 0 {
		j.QuietPeriod = DefaultQuietPeriod
	}
	if j.DependencyQuietPeriod <= 0 {
		j.DependencyQuietPeriod = DefaultDependencyQuietPeriod
	}
	if j.CacheTTL <= 0 {
		j.CacheTTL = DefaultCacheTTL
	}
	if j.Selector.Kind == "" {
		j.Selector.Kind = SelectIdentity
	}
	return j
}

// Validate checks that the job is complete.
func (j MirrorJob) Validate() error {
	if j.Name == "" {
		return zerr.With(zerr.Wrap(ErrInvalidJob, "job has no name"), "target", j.Target)
	}
	if j.Target == "" {
		return zerr.With(zerr.Wrap(ErrInvalidJob, "job has no target"), "job", j.Name)
	}
	if j.MaxSourceLength < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidJob, "maxSourceLength must not be negative"), "job", j.Name)
	}
	if j.Selector.Kind == SelectIdentity && j.Source == "" {
		return zerr.With(zerr.Wrap(ErrInvalidJob, "job has no source"), "job", j.Name)
	}
	if err := j.Selector.Validate(); err != nil {
		return zerr.With(err, "job", j.Name)
	}
	return nil
}
