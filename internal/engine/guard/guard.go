// Package guard decides whether a mirror job can be copied safely.
package guard

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/expansion"
	"go.trai.ch/mirror/internal/wikitext"
)

// Verdict is the outcome of a check.
type Verdict int

const (
	// Idle means nothing relevant changed since the last completed attempt.
	Idle Verdict = iota
	// Settling means a relevant edit is too recent; the attempt is retried silently later.
	Settling
	// Ready means the copy can be written.
	Ready
)

// String returns the verdict name used in logs.
func (v Verdict) String() string {
	switch v {
	case Idle:
		return "idle"
	case Settling:
		return "settling"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Attempt is the input of one check.
type Attempt struct {
	Job        domain.MirrorJob
	Resolution domain.Resolution
	Cursor     domain.SyncCursor
	// Events are the feed events since the cursor token.
	Events []domain.ChangeEvent
	Now    time.Time
}

// Decision is the result of a check. LastEdit is set even when the check fails.
type Decision struct {
	Verdict Verdict
	// LastEdit is the latest relevant edit by an untrusted editor.
	LastEdit time.Time
	// Code is the new content of the bot section of the target.
	Code      string
	Source    *domain.Revision
	Target    *domain.Revision
	Expansion domain.ExpansionResult
}

// Guard runs the quiescence and policy checks.
type Guard struct {
	store   ports.DocumentStore
	cache   *expansion.Cache
	ns      domain.Namespaces
	trusted []string
}

// New creates a Guard. Edits by trusted editors never delay a copy.
func New(store ports.DocumentStore, cache *expansion.Cache, ns domain.Namespaces, trusted []string) *Guard {
	return &Guard{store: store, cache: cache, ns: ns, trusted: trusted}
}

func (g *Guard) isTrusted(user string) bool {
	return slices.Contains(g.trusted, user)
}

// Relevant reports whether the attempt has anything to do, and returns the latest relevant
// edit by an untrusted editor. A cursor without token always makes the job relevant.
func (g *Guard) Relevant(a Attempt) (bool, time.Time) {
	relevant := a.Cursor.Token == ""
	if a.Job.Selector.Dated() && a.Resolution.Source != a.Cursor.Source {
		relevant = true
	}

	lastEdit := a.Cursor.LastEdit
	for _, e := range a.Events {
		if !slices.ContainsFunc(e.Titles(), a.Resolution.Watches) {
			continue
		}
		relevant = true
		if !g.isTrusted(e.User) && e.Timestamp.After(lastEdit) {
			lastEdit = e.Timestamp
		}
	}
	return relevant, lastEdit
}

// Check runs the checks in order and stops at the first one that does not pass. Problems the
// wiki editors must fix are returned as *domain.ValidationError, *domain.FreshnessError or
// *domain.PolicyError; collaborator failures are returned unchanged.
func (g *Guard) Check(ctx context.Context, a Attempt) (Decision, error) {
	relevant, lastEdit := g.Relevant(a)
	d := Decision{Verdict: Idle, LastEdit: lastEdit}
	if !relevant {
		return d, nil
	}
	if g.settling(a, lastEdit) {
		d.Verdict = Settling
		return d, nil
	}

	if a.Resolution.UsesPlaceholder() {
		d.Code = a.Resolution.Placeholder
	} else {
		source, err := g.readSource(ctx, a)
		if err != nil {
			return d, err
		}
		d.Source = source
		if !g.isTrusted(source.User) && g.settling(a, source.Timestamp) {
			d.Verdict = Settling
			return d, nil
		}

		exp, err := g.cache.WithTTL(a.Job.CacheTTL).Expand(ctx, source.Content, source.Title, source.RevID)
		if err != nil {
			return d, err
		}
		d.Expansion = exp
		d.Code = exp.Code

		if err := checkFreshness(a, source, exp); err != nil {
			return d, err
		}
		if err := g.checkPolicy(ctx, exp.Code, a.Now); err != nil {
			return d, err
		}
	}

	target, err := g.readTarget(ctx, a.Job.Target)
	if err != nil {
		return d, err
	}
	d.Target = target
	d.Verdict = Ready
	return d, nil
}

func (g *Guard) settling(a Attempt, edit time.Time) bool {
	return !edit.IsZero() && a.Now.Sub(edit) < a.Job.QuietPeriod
}

func (g *Guard) readSource(ctx context.Context, a Attempt) (*domain.Revision, error) {
	source, err := g.store.ReadPage(ctx, a.Resolution.Source)
	if errors.Is(err, domain.ErrPageNotFound) {
		return nil, domain.NewValidationError(domain.MsgSourceMissing)
	}
	if err != nil {
		return nil, err
	}
	if _, redirect := wikitext.Redirect(source.Content); redirect || source.Redirect {
		return nil, domain.NewValidationError(domain.MsgSourceRedirect)
	}
	if limit := a.Job.MaxSourceLength; limit > 0 && len(wikitext.Transclude(source.Content)) > limit {
		return nil, domain.NewValidationError(domain.MsgSourceTooLong, limit/1000)
	}
	return source, nil
}

// checkFreshness fails when a dependency was edited after the source revision and no more than
// the dependency quiet period ago. A dependency edited at the exact source timestamp counts.
func checkFreshness(a Attempt, source *domain.Revision, exp domain.ExpansionResult) error {
	changed := exp.LastChangedAt
	if changed.IsZero() || changed.Before(source.Timestamp) {
		return nil
	}
	if a.Now.Sub(changed) > a.Job.DependencyQuietPeriod {
		return nil
	}
	return &domain.FreshnessError{
		Template:  exp.LastChangedTemplate,
		Source:    source.Title,
		ChangedAt: changed,
	}
}

func (g *Guard) checkPolicy(ctx context.Context, code string, now time.Time) error {
	sheets := wikitext.Stylesheets(code, g.ns)
	if len(sheets) == 0 {
		return nil
	}
	protections, err := g.store.ReadProtections(ctx, sheets)
	if err != nil {
		return err
	}

	minExpiry := now.AddDate(0, 0, domain.ProtectionSafetyMarginDays)
	var violations []domain.PolicyViolation
	for _, sheet := range sheets {
		entries, ok := protections[sheet]
		if !ok {
			violations = append(violations, domain.PolicyViolation{Kind: domain.ViolationUnverifiable, Title: sheet})
			continue
		}
		if kind, bad := evaluate(entries, minExpiry); bad {
			violations = append(violations, domain.PolicyViolation{Kind: kind, Title: sheet})
		}
	}
	if len(violations) > 0 {
		return &domain.PolicyError{Violations: violations}
	}
	return nil
}

// evaluate checks the edit protection of one stylesheet.
func evaluate(entries []domain.Protection, minExpiry time.Time) (domain.ViolationKind, bool) {
	i := slices.IndexFunc(entries, func(p domain.Protection) bool { return p.Type == domain.ProtectEdit })
	if i < 0 {
		return domain.ViolationUnprotected, true
	}
	edit := entries[i]
	switch {
	case edit.Level == domain.LevelNone:
		return domain.ViolationUnprotected, true
	case edit.Level < domain.LevelExtended:
		return domain.ViolationInsufficientLevel, true
	case !edit.Expiry.IsZero() && edit.Expiry.Before(minExpiry):
		return domain.ViolationExpiringSoon, true
	default:
		return 0, false
	}
}

func (g *Guard) readTarget(ctx context.Context, title string) (*domain.Revision, error) {
	target, err := g.store.ReadPage(ctx, title)
	if errors.Is(err, domain.ErrPageNotFound) {
		return nil, domain.NewValidationError(domain.MsgTargetMissing)
	}
	if err != nil {
		return nil, err
	}
	if !wikitext.HasBotSection(target.Content) {
		return nil, domain.NewValidationError(domain.MsgBotSectionNotFound, domain.Link(title))
	}
	return target, nil
}
