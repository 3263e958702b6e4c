// Package selector resolves the source page of a mirror job for the displayed day.
package selector

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/wikitext"
)

// DayLayout formats the day key of cached selections.
const DayLayout = "2006-01-02"

// DateFormatter renders day-dependent titles in the language of the wiki.
type DateFormatter interface {
	FormatDate(pattern string, day time.Time) string
	LongDate(day time.Time) string
}

// Selector resolves job sources.
type Selector struct {
	store ports.DocumentStore
	dates DateFormatter
	ns    domain.Namespaces
}

// New creates a Selector reading index pages from store.
func New(store ports.DocumentStore, dates DateFormatter, ns domain.Namespaces) *Selector {
	return &Selector{store: store, dates: dates, ns: ns}
}

// IndexTitle returns the index page consulted by a day-indexed job, or "".
func (s *Selector) IndexTitle(job domain.MirrorJob, day time.Time) string {
	if job.Selector.Kind != domain.SelectDayIndexed {
		return ""
	}
	return s.dates.FormatDate(job.Selector.IndexPattern, day)
}

// Resolve returns the source of job for day. A day-indexed job reuses cached when it was
// computed for the same day, unless refresh is set. The returned selection is the one to
// persist; it is nil for other selector kinds.
//
// Selection problems are returned as *domain.SelectionError; store failures are returned
// unchanged.
func (s *Selector) Resolve(
	ctx context.Context,
	job domain.MirrorJob,
	day time.Time,
	cached *domain.Selection,
	refresh bool,
) (domain.Resolution, *domain.Selection, error) {
	res := domain.Resolution{Day: day}

	switch job.Selector.Kind {
	case domain.SelectDaily:
		res.Source = s.dates.FormatDate(job.Selector.TitlePattern, day)
	case domain.SelectDayIndexed:
		res.Index = s.IndexTitle(job, day)
		key := day.Format(DayLayout)

		sel := cached
		if sel == nil || sel.Day != key || refresh {
			source, err := s.readIndex(ctx, job.Selector, res.Index, day)
			if err != nil {
				return domain.Resolution{}, nil, err
			}
			sel = &domain.Selection{Day: key, Source: source}
		}
		res.Source = sel.Source
		if res.Source == "" {
			res.Placeholder = job.Selector.Placeholder
		}
		res.Watch = append(res.Watch, res.Index)
		res.Watch = appendWatch(res.Watch, res.Source, job.Upstream)
		return res, sel, nil
	default:
		res.Source = job.Source
	}

	res.Watch = appendWatch(res.Watch, res.Source, job.Upstream)
	return res, nil, nil
}

func appendWatch(watch []string, source string, upstream []string) []string {
	if source != "" {
		watch = append(watch, source)
	}
	for _, u := range upstream {
		if !slices.Contains(watch, u) {
			watch = append(watch, u)
		}
	}
	return watch
}

// readIndex returns the source selected on the index page, or "" for an empty optional slot.
func (s *Selector) readIndex(ctx context.Context, sel domain.ContentSelector, index string, day time.Time) (string, error) {
	page, err := s.store.ReadPage(ctx, index)
	if errors.Is(err, domain.ErrPageNotFound) {
		return "", domain.NewSelectionError(index, domain.MsgIndexMissing)
	}
	if err != nil {
		return "", err
	}

	wanted := s.ns.TemplateTitle(sel.Template)
	param := s.dates.FormatDate(sel.ParamPattern, day)
	for _, tpl := range wikitext.ParseTemplates(page.Content) {
		if s.ns.TemplateTitle(tpl.Name) != wanted {
			continue
		}
		value, _ := tpl.Param(param)
		value = strings.TrimSpace(value)
		if value == "" {
			if sel.Optional {
				return "", nil
			}
			return "", domain.NewSelectionError(index, domain.MsgNoValueForDay, s.dates.LongDate(day))
		}
		if !s.ns.IsMain(value) {
			return "", domain.NewSelectionError(index, domain.MsgNotMainNamespace, domain.Link(value))
		}
		return sel.SourcePrefix + value, nil
	}
	return "", domain.NewSelectionError(index, domain.MsgIndexTemplateMissing, sel.Template)
}

// ShouldPrecache reports whether title is a source job will display after day, so that its
// expansion can be cached ahead of time.
func (s *Selector) ShouldPrecache(job domain.MirrorJob, title string, day time.Time) bool {
	switch job.Selector.Kind {
	case domain.SelectDaily:
		for d := 1; d <= job.Selector.PrecacheDays; d++ {
			if s.dates.FormatDate(job.Selector.TitlePattern, day.AddDate(0, 0, d)) == title {
				return true
			}
		}
		return false
	case domain.SelectDayIndexed:
		return job.Selector.Precache && job.Selector.SourcePrefix != "" &&
			strings.HasPrefix(title, job.Selector.SourcePrefix) &&
			title != s.IndexTitle(job, day)
	default:
		return false
	}
}
