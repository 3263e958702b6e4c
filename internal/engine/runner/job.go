package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/guard"
	"go.trai.ch/mirror/internal/engine/writer"
	"go.trai.ch/zerr"
)

type jobRun struct {
	job    domain.MirrorJob
	state  *domain.State
	feed   *feedReader
	now    time.Time
	day    time.Time
	dryRun bool
}

// runJob runs one job and updates its cursor:
//   - a completed attempt (written, unchanged, idle or rejected by validation) moves the cursor
//     to the end of the feed page;
//   - settling and dependency or policy failures keep the position so that the attempt is
//     repeated on the next run;
//   - a collaborator failure leaves the cursor untouched.
func (r *Runner) runJob(ctx context.Context, run jobRun) JobResult {
	job := run.job
	ctx, span := r.tracer.Start(ctx, "mirror.job",
		ports.WithAttribute("job.name", job.Name),
		ports.WithAttribute("job.target", job.Target))
	defer span.End()

	cursor := run.state.Cursor(job.Name)
	result := JobResult{Job: job.Name}
	finish := func(status Status, next domain.SyncCursor, err error) JobResult {
		result.Status = status
		result.Err = err
		if status == StatusDeferred {
			next = run.state.Cursor(job.Name)
			r.logger.Error(zerr.With(zerr.Wrap(err, "job deferred to the next run"), "job", job.Name))
		} else {
			run.state.SetCursor(job.Name, next)
		}
		result.Failure = next.Failure

		span.SetAttribute("job.status", string(status))
		if err != nil {
			span.RecordError(err)
		}
		if status == StatusWritten || status == StatusFailed {
			r.logger.Info(fmt.Sprintf("%s: %s", job.Name, status))
		}
		return result
	}

	page, err := r.readFeed(ctx, run.feed, &cursor)
	if err != nil {
		return finish(StatusDeferred, cursor, err)
	}

	index := r.selector.IndexTitle(job, run.day)
	res, sel, err := r.selector.Resolve(ctx, job, run.day, cursor.Selection, touches(page.Events, index))
	var selErr *domain.SelectionError
	if errors.As(err, &selErr) {
		cursor.Token = page.NextToken
		cursor.Selection = nil
		cursor.Failure = r.loc.Sprintf(domain.MsgSelectionFailed, domain.Link(selErr.Index), r.loc.Messages(selErr))
		return finish(StatusFailed, cursor, err)
	}
	if err != nil {
		return finish(StatusDeferred, cursor, err)
	}
	result.Source = res.Source

	from := res.Source
	if res.UsesPlaceholder() {
		from = res.Index
	}
	complete := func(c domain.SyncCursor) domain.SyncCursor {
		c.Token = page.NextToken
		c.Source = res.Source
		c.Selection = sel
		return c
	}
	fail := func(c domain.SyncCursor, rep domain.Reportable) domain.SyncCursor {
		c.Failure = r.loc.Sprintf(domain.MsgCopyFailed, domain.Link(from), domain.Link(job.Target), r.loc.Messages(rep))
		return c
	}

	decision, err := r.guard.Check(ctx, guard.Attempt{
		Job:        job,
		Resolution: res,
		Cursor:     cursor,
		Events:     page.Events,
		Now:        run.now,
	})
	cursor.LastEdit = decision.LastEdit
	cursor.Selection = sel

	var (
		validation *domain.ValidationError
		freshness  *domain.FreshnessError
		policy     *domain.PolicyError
	)
	switch {
	case errors.As(err, &validation):
		return finish(StatusFailed, fail(complete(cursor), validation), err)
	case errors.As(err, &freshness):
		return finish(StatusFailed, fail(cursor, freshness), err)
	case errors.As(err, &policy):
		return finish(StatusFailed, fail(cursor, policy), err)
	case err != nil:
		return finish(StatusDeferred, cursor, err)
	case decision.Verdict == guard.Idle:
		return finish(StatusIdle, complete(cursor), nil)
	case decision.Verdict == guard.Settling:
		return finish(StatusSettling, cursor, nil)
	}

	out, err := r.writer.Apply(ctx, writer.Plan{
		Job:    job,
		From:   from,
		Target: decision.Target,
		Code:   decision.Code,
		DryRun: run.dryRun,
	})
	if errors.As(err, &validation) {
		return finish(StatusFailed, fail(complete(cursor), validation), err)
	}
	if err != nil {
		return finish(StatusDeferred, cursor, err)
	}

	cursor = complete(cursor)
	cursor.Failure = ""
	if out.Result == writer.Unchanged {
		return finish(StatusUnchanged, cursor, nil)
	}
	result.Edit = &out.Edit
	return finish(StatusWritten, cursor, nil)
}

// readFeed returns the feed page after the cursor. An invalid token is dropped and the job
// starts over from the head of the feed.
func (r *Runner) readFeed(ctx context.Context, feed *feedReader, cursor *domain.SyncCursor) (*domain.FeedPage, error) {
	page, err := feed.fetch(ctx, cursor.Token)
	if !errors.Is(err, domain.ErrInvalidToken) {
		return page, err
	}
	r.logger.Warn(fmt.Sprintf("discarding invalid feed token %q", cursor.Token))
	cursor.Token = ""
	return feed.fetch(ctx, "")
}
