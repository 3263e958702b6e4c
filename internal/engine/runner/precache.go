package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// queuePrecache pushes the titles a job will display on a later day.
func (r *Runner) queuePrecache(state *domain.State, titles []string, day time.Time) {
	for _, title := range titles {
		if _, ok := r.precacheJob(title, day); ok {
			state.PushPrecache(title)
		}
	}
}

// precacheJob returns the first job that will display title after day.
func (r *Runner) precacheJob(title string, day time.Time) (domain.MirrorJob, bool) {
	for _, job := range r.cfg.Jobs {
		if r.selector.ShouldPrecache(job, title, day) {
			return job, true
		}
	}
	return domain.MirrorJob{}, false
}

// precache expands the queued sources, most recently queued first. Deleted pages are dropped;
// sources that could not be expanded stay queued for the next run.
func (r *Runner) precache(ctx context.Context, state *domain.State, day time.Time) (done []string, deferred int) {
	var kept []string
	for _, title := range slices.Backward(state.Precache) {
		err := r.precacheOne(ctx, title, day)
		var transport *domain.TransportError
		switch {
		case err == nil:
			done = append(done, title)
		case errors.Is(err, domain.ErrPageNotFound):
			r.logger.Warn(fmt.Sprintf("dropping %s from the pre-cache queue: page does not exist", title))
		default:
			if errors.As(err, &transport) {
				deferred++
			}
			kept = append(kept, title)
			r.logger.Error(zerr.With(zerr.Wrap(err, "pre-cache failed"), "title", title))
		}
	}
	slices.Reverse(kept)
	state.Precache = kept
	return done, deferred
}

// precacheOne expands title with the cache TTL of the job that will display it. Entries queued
// by an earlier run that no job claims anymore use the default TTL.
func (r *Runner) precacheOne(ctx context.Context, title string, day time.Time) error {
	rev, err := r.wiki.ReadPage(ctx, title)
	if err != nil {
		return err
	}
	cache := r.cache
	if job, ok := r.precacheJob(title, day); ok {
		cache = cache.WithTTL(job.CacheTTL)
	}
	_, err = cache.Expand(ctx, rev.Content, rev.Title, rev.RevID)
	return err
}
