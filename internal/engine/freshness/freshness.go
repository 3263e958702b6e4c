// Package freshness finds the most recently edited dependency of an expansion.
package freshness

import (
	"context"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

// Resolver reads dependency timestamps from a document store.
type Resolver struct {
	store ports.DocumentStore
}

// NewResolver creates a Resolver.
func NewResolver(store ports.DocumentStore) *Resolver {
	return &Resolver{store: store}
}

// Snapshot returns the titles that exist in the store with their latest edit time, in the
// order of titles.
func (r *Resolver) Snapshot(ctx context.Context, titles []string) (domain.DependencySnapshot, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	stamps, err := r.store.ReadTimestamps(ctx, titles)
	if err != nil {
		return nil, err
	}

	snapshot := make(domain.DependencySnapshot, 0, len(stamps))
	for _, title := range titles {
		if ts, ok := stamps[title]; ok {
			snapshot = append(snapshot, domain.TemplateStamp{Title: title, Timestamp: ts})
		}
	}
	return snapshot, nil
}

// Resolve returns the most recently edited of titles. Missing titles are ignored; ok is false
// when none of them exists.
func (r *Resolver) Resolve(ctx context.Context, titles []string) (domain.TemplateStamp, bool, error) {
	snapshot, err := r.Snapshot(ctx, titles)
	if err != nil {
		return domain.TemplateStamp{}, false, err
	}
	latest, ok := snapshot.Latest()
	return latest, ok, nil
}
