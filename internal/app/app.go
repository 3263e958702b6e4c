// Package app implements the application layer for mirror.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/mirror/internal/adapters/detector"
	"go.trai.ch/mirror/internal/adapters/l10n"
	"go.trai.ch/mirror/internal/adapters/telemetry"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/engine/expansion"
	"go.trai.ch/mirror/internal/engine/freshness"
	"go.trai.ch/mirror/internal/engine/runner"
	"go.trai.ch/mirror/internal/ui/output"
	"go.trai.ch/mirror/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	connector    ports.WikiConnector
	opener       ports.ExpansionStoreOpener
	states       ports.StateStore
	logger       ports.Logger
	tracer       ports.Tracer
	clock        clockwork.Clock
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	connector ports.WikiConnector,
	opener ports.ExpansionStoreOpener,
	states ports.StateStore,
	log ports.Logger,
	tracer ports.Tracer,
	clock clockwork.Clock,
) *App {
	return &App{
		configLoader: loader,
		connector:    connector,
		opener:       opener,
		states:       states,
		logger:       log,
		tracer:       tracer,
		clock:        clock,
		out:          os.Stdout,
	}
}

// WithOutput sets the writer of command results.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

// SetLogFormat applies the --log-format flag to the logger.
func (a *App) SetLogFormat(flag string) {
	l, ok := a.logger.(jsonSwitch)
	if !ok {
		return
	}
	l.SetJSON(detector.ResolveFormat(detector.DetectEnvironment(), flag) == detector.FormatJSON)
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath string
	Jobs       []string
	DryRun     bool
	// Trace logs a line per finished span.
	Trace bool
}

// Run runs the jobs once.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	loc, err := l10n.New(cfg.Language)
	if err != nil {
		return err
	}

	tracer := a.tracer
	if opts.Trace {
		provider := telemetry.NewProvider(a.logger)
		defer func() {
			_ = provider.Shutdown(ctx)
		}()
		tracer = telemetry.NewOTelTracerFrom(provider, telemetry.InstrumentationName)
	}

	wiki, err := a.connector.Connect(ctx, cfg.Wiki)
	if err != nil {
		return zerr.Wrap(err, "failed to connect to the wiki")
	}
	store, err := a.opener.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	cache := expansion.New(store, wiki, freshness.NewResolver(wiki), a.clock)
	r := runner.New(cfg, wiki, cache, a.states, loc, a.logger, tracer, a.clock)

	summary, err := r.Run(ctx, runner.Options{Jobs: opts.Jobs, DryRun: opts.DryRun})
	if summary != nil {
		a.printSummary(summary, opts.DryRun)
	}
	return err
}

func (a *App) printSummary(s *runner.Summary, dryRun bool) {
	rows := make([][]string, 0, len(s.Results))
	for _, res := range s.Results {
		detail := res.Source
		if res.Failure != "" {
			detail = res.Failure
		}
		rows = append(rows, []string{statusCell(res.Status), res.Job, style.Muted.Render(detail)})
	}
	_, _ = fmt.Fprint(a.out, output.Columns(rows))

	if dryRun {
		for _, res := range s.Results {
			if res.Edit == nil {
				continue
			}
			_, _ = fmt.Fprintf(a.out, "\n%s %s (%s)\n%s\n",
				style.Heading.Render(res.Edit.Title), style.Muted.Render("would be saved"), res.Edit.Summary,
				res.Edit.Content)
		}
	}
	if len(s.Precached) > 0 {
		_, _ = fmt.Fprintf(a.out, "%s pre-cached %s\n", style.Success.Render(style.Dot), strings.Join(s.Precached, ", "))
	}
	if s.ReportWritten {
		_, _ = fmt.Fprintf(a.out, "%s status report updated\n", style.Success.Render(style.Check))
	}
}

func statusCell(status runner.Status) string {
	switch status {
	case runner.StatusWritten:
		return style.Success.Render(style.Check + " " + string(status))
	case runner.StatusFailed:
		return style.Failure.Render(style.Cross + " " + string(status))
	case runner.StatusDeferred:
		return style.Pending.Render(style.Warning + " " + string(status))
	case runner.StatusSettling:
		return style.Pending.Render(style.Tilde + " " + string(status))
	default:
		return style.Muted.Render(style.Circle + " " + string(status))
	}
}

// Jobs lists the configured jobs.
func (a *App) Jobs(_ context.Context, configPath string) error {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	rows := [][]string{{
		style.Heading.Render("NAME"),
		style.Heading.Render("SELECTOR"),
		style.Heading.Render("SOURCE"),
		style.Heading.Render("TARGET"),
	}}
	for _, job := range cfg.Jobs {
		rows = append(rows, []string{job.Name, string(job.Selector.Kind), sourceOf(job), job.Target})
	}
	_, _ = fmt.Fprint(a.out, output.Columns(rows))
	return nil
}

func sourceOf(job domain.MirrorJob) string {
	switch job.Selector.Kind {
	case domain.SelectDaily:
		return job.Selector.TitlePattern
	case domain.SelectDayIndexed:
		return job.Selector.IndexPattern + " {{" + job.Selector.Template + "|" + job.Selector.ParamPattern + "}}"
	default:
		return job.Source
	}
}

// ShowCache prints the cached expansions of a source page, newest first.
func (a *App) ShowCache(ctx context.Context, configPath, title string) error {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	store, err := a.opener.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	entries, err := store.List(ctx, title)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrNoCacheEntries, "nothing cached"), "title", title)
	}

	rows := [][]string{{
		style.Heading.Render("CREATED"),
		style.Heading.Render("REVISION"),
		style.Heading.Render("HASH"),
		style.Heading.Render("TEMPLATES"),
		style.Heading.Render("LAST CHANGED"),
	}}
	for _, e := range entries {
		changed := style.Muted.Render("-")
		if e.LastChangedTemplate != "" {
			changed = e.LastChangedTemplate + " " + style.Muted.Render(e.LastChangedAt.Format(time.RFC3339))
		}
		rows = append(rows, []string{
			e.CreatedAt.Format(time.RFC3339),
			strconv.FormatInt(e.Key.RevID, 10),
			strconv.FormatUint(e.Key.ContentHash, 16),
			strconv.Itoa(len(e.Templates)),
			changed,
		})
	}
	_, _ = fmt.Fprint(a.out, output.Columns(rows))
	return nil
}
