// Package runner runs the configured mirror jobs once and publishes the status report.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/expansion"
	"go.trai.ch/mirror/internal/engine/guard"
	"go.trai.ch/mirror/internal/engine/selector"
	"go.trai.ch/mirror/internal/engine/writer"
	"go.trai.ch/zerr"
)

// Localizer renders dates and messages in the language of the wiki.
type Localizer interface {
	selector.DateFormatter
	writer.Printer
	Message(m domain.Message) string
	Messages(err domain.Reportable) string
}

// Options selects what a run does.
type Options struct {
	// Jobs restricts the run to the named jobs. Empty runs every job.
	Jobs []string
	// DryRun computes the edits without writing pages or saving state.
	DryRun bool
}

// Status is the outcome of one job.
type Status string

const (
	// StatusWritten means the target was updated.
	StatusWritten Status = "written"
	// StatusUnchanged means the target already matched the source.
	StatusUnchanged Status = "unchanged"
	// StatusIdle means nothing relevant changed.
	StatusIdle Status = "idle"
	// StatusSettling means a recent edit delayed the copy.
	StatusSettling Status = "settling"
	// StatusFailed means an error was surfaced in the status report.
	StatusFailed Status = "failed"
	// StatusDeferred means a collaborator failed; the job is retried on the next run.
	StatusDeferred Status = "deferred"
)

// JobResult is the outcome of one job.
type JobResult struct {
	Job    string
	Status Status
	Source string
	// Failure is the report line of the job, possibly carried over from an earlier run.
	Failure string
	Err     error
	// Edit is set when the job wrote, or would have written in a dry run.
	Edit *domain.Edit
}

// Summary is the outcome of a run.
type Summary struct {
	RunID         string
	Results       []JobResult
	Report        domain.StatusReport
	ReportWritten bool
	Precached     []string
	// Deferred counts the transport failures of the run.
	Deferred int
}

// Runner runs mirror jobs.
type Runner struct {
	cfg      *domain.Config
	wiki     ports.Wiki
	states   ports.StateStore
	cache    *expansion.Cache
	selector *selector.Selector
	guard    *guard.Guard
	writer   *writer.Writer
	loc      Localizer
	logger   ports.Logger
	tracer   ports.Tracer
	clock    clockwork.Clock
}

// New creates a Runner for the jobs of cfg.
func New(
	cfg *domain.Config,
	wiki ports.Wiki,
	cache *expansion.Cache,
	states ports.StateStore,
	loc Localizer,
	logger ports.Logger,
	tracer ports.Tracer,
	clock clockwork.Clock,
) *Runner {
	ns := cfg.Wiki.Namespaces
	return &Runner{
		cfg:      cfg,
		wiki:     wiki,
		states:   states,
		cache:    cache,
		selector: selector.New(wiki, loc, ns),
		guard:    guard.New(wiki, cache, ns, cfg.TrustedEditors),
		writer:   writer.New(wiki, loc),
		loc:      loc,
		logger:   logger,
		tracer:   tracer,
		clock:    clock,
	}
}

// Run runs the selected jobs once, pre-caches upcoming sources, publishes the status report
// and saves the state. Errors surfaced in the report do not fail the run; it returns an error
// wrapping domain.ErrRunIncomplete, after saving the state, when a collaborator failed.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	jobs, err := r.selectJobs(opts.Jobs)
	if err != nil {
		return nil, err
	}

	runID := uuid.Must(uuid.NewV7()).String()
	ctx, span := r.tracer.Start(ctx, "mirror.run",
		ports.WithAttribute("run.id", runID),
		ports.WithAttribute("run.jobs", len(jobs)),
		ports.WithAttribute("run.dry_run", opts.DryRun))
	defer span.End()

	state, err := r.states.Load(r.cfg.StatePath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := r.clock.Now()
	day := r.displayDay(now)
	feed := newFeedReader(r.wiki)
	summary := &Summary{RunID: runID}

	for _, job := range jobs {
		res := r.runJob(ctx, jobRun{job: job, state: state, feed: feed, now: now, day: day, dryRun: opts.DryRun})
		if res.Status == StatusDeferred {
			summary.Deferred++
		}
		summary.Results = append(summary.Results, res)
	}
	summary.Report = r.report(state)

	if !opts.DryRun {
		r.queuePrecache(state, feed.titles(), day)
		precached, deferred := r.precache(ctx, state, day)
		summary.Precached = precached
		summary.Deferred += deferred

		written, err := r.publishReport(ctx, state, summary.Report)
		if err != nil {
			r.logger.Error(zerr.With(zerr.Wrap(err, "status report not published"), "page", r.cfg.Report.Title))
			summary.Deferred++
		}
		summary.ReportWritten = written

		if err := r.states.Save(r.cfg.StatePath, state); err != nil {
			span.RecordError(err)
			return summary, err
		}
	}

	span.SetAttribute("run.deferred", summary.Deferred)
	if summary.Deferred > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrRunIncomplete, "some jobs will be retried on the next run"),
			"deferred", summary.Deferred)
		span.RecordError(err)
		return summary, err
	}
	return summary, nil
}

func (r *Runner) selectJobs(names []string) ([]domain.MirrorJob, error) {
	if len(names) == 0 {
		return r.cfg.Jobs, nil
	}
	jobs := make([]domain.MirrorJob, 0, len(names))
	for _, name := range names {
		job, ok := r.cfg.Job(name)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownJob, "job is not configured"), "job", name)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// displayDay returns the midnight of the day shown at now in the configured time zone.
func (r *Runner) displayDay(now time.Time) time.Time {
	loc := r.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// report lists the failures of every configured job, so that a run restricted to some jobs
// keeps the failures of the others.
func (r *Runner) report(state *domain.State) domain.StatusReport {
	var report domain.StatusReport
	for _, job := range r.cfg.Jobs {
		if failure := state.Cursor(job.Name).Failure; failure != "" {
			report.Add(failure)
		}
	}
	return report
}

// publishReport writes the status report page when its rendering changed.
func (r *Runner) publishReport(ctx context.Context, state *domain.State, report domain.StatusReport) (bool, error) {
	if r.cfg.Report.Title == "" {
		return false, nil
	}
	body := report.Body()
	if report.Empty() {
		body = r.loc.Sprintf(domain.MsgNoReportedErrors)
	}
	if body == state.ReportedErrors {
		return false, nil
	}

	err := r.wiki.EditPage(ctx, domain.Edit{
		Title:   r.cfg.Report.Title,
		Content: body,
		Summary: r.loc.Sprintf(domain.MsgReportSummary),
		Create:  true,
	})
	if err != nil {
		return false, err
	}
	state.ReportedErrors = body
	r.logger.Info(fmt.Sprintf("status report updated on %s", r.cfg.Report.Title))
	return true, nil
}
