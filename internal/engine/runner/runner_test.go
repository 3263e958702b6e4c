package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/l10n"
	"go.trai.ch/mirror/internal/adapters/memwiki"
	"go.trai.ch/mirror/internal/adapters/sqlite"
	"go.trai.ch/mirror/internal/adapters/state"
	"go.trai.ch/mirror/internal/adapters/telemetry"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports/mocks"
	"go.trai.ch/mirror/internal/engine/expansion"
	"go.trai.ch/mirror/internal/engine/freshness"
	"go.trai.ch/mirror/internal/engine/runner"
	"go.trai.ch/mirror/internal/wikitext"
	"go.uber.org/mock/gomock"
)

const (
	newsSource      = "Modèle:Accueil actualité"
	newsTarget      = "Wikipédia:Accueil principal/Actualités"
	ephemerisTarget = "Wikipédia:Accueil principal/Éphéméride"
	today           = "Wikipédia:Éphéméride/1er mai"
	tomorrow        = "Wikipédia:Éphéméride/2 mai"
	featuredTarget  = "Wikipédia:Accueil principal/Lumière sur b"
	featuredIndex   = "Wikipédia:Lumière sur/Mai 2024"
	reportTitle     = "Utilisateur:MirrorBot/Erreurs"
)

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newsJob() domain.MirrorJob {
	return domain.MirrorJob{Name: "news", Source: newsSource, Target: newsTarget}
}

func ephemerisJob() domain.MirrorJob {
	return domain.MirrorJob{
		Name:   "ephemeris",
		Target: ephemerisTarget,
		Selector: domain.ContentSelector{
			Kind:         domain.SelectDaily,
			TitlePattern: "Wikipédia:Éphéméride/{dayOrdinal} {month}",
			PrecacheDays: 1,
		},
	}
}

func featuredJob() domain.MirrorJob {
	return domain.MirrorJob{
		Name:   "featured-b",
		Target: featuredTarget,
		Selector: domain.ContentSelector{
			Kind:         domain.SelectDayIndexed,
			IndexPattern: "Wikipédia:Lumière sur/{Month} {year}",
			Template:     "Lumière sur/Accueil",
			ParamPattern: "{dd}b",
			SourcePrefix: "Wikipédia:Lumière sur/",
			Optional:     true,
			Placeholder:  "<!-- Pas de second article -->",
		},
	}
}

func section(content string) string {
	return "Intro\n" + wikitext.BeginMarker + "\n" + content + "\n" + wikitext.EndMarker + "\n"
}

type fixture struct {
	cache     *expansion.Cache
	loc       *l10n.Localizer
	clock     *clockwork.FakeClock
	wiki      *memwiki.Wiki
	cfg       *domain.Config
	states    *state.Store
	logger    *mocks.MockLogger
	runner    *runner.Runner
	statePath string
}

// newFixture creates a wiki whose pages were last edited two hours ago.
func newFixture(t *testing.T, jobs ...domain.MirrorJob) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(start.Add(-2 * time.Hour))
	ns := domain.Namespaces{Template: "Modèle", Names: []string{"Wikipédia", "Utilisateur"}}
	wiki := memwiki.New(clock, ns)

	for i := range jobs {
		jobs[i] = jobs[i].WithDefaults()
		wiki.SetPage(jobs[i].Target, section("old"), "Alice")
	}
	wiki.SetPage(newsSource, "<noinclude>doc</noinclude>Nouvelles {{Date}}", "Alice")
	wiki.SetPage(today, "Ce jour-là", "Alice")
	clock.Advance(2 * time.Hour)

	store, err := sqlite.Open(domain.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	loc, err := l10n.New("fr")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	f := &fixture{
		cache:     expansion.New(store, wiki, freshness.NewResolver(wiki), clock),
		loc:       loc,
		clock:     clock,
		wiki:      wiki,
		states:    state.NewStore(),
		logger:    logger,
		statePath: filepath.Join(t.TempDir(), "state.json"),
	}
	f.cfg = &domain.Config{
		Language:  "fr",
		Location:  time.UTC,
		Wiki:      domain.WikiSettings{Namespaces: ns},
		StatePath: f.statePath,
		Report:    domain.ReportSettings{Title: reportTitle},
		Jobs:      jobs,
	}
	f.build()
	return f
}

// build creates the runner from the current configuration.
func (f *fixture) build() {
	f.runner = runner.New(f.cfg, f.wiki, f.cache, f.states, f.loc, f.logger, telemetry.NewNoOpTracer(), f.clock)
}

func (f *fixture) quiet() {
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Error(gomock.Any()).AnyTimes()
}

func (f *fixture) run(t *testing.T, opts runner.Options) *runner.Summary {
	t.Helper()
	summary, err := f.runner.Run(context.Background(), opts)
	require.NoError(t, err)
	return summary
}

func (f *fixture) state(t *testing.T) *domain.State {
	t.Helper()
	st, err := f.states.Load(f.statePath)
	require.NoError(t, err)
	return st
}

func (f *fixture) content(t *testing.T, title string) string {
	t.Helper()
	content, ok := f.wiki.Content(title)
	require.True(t, ok, "page %s does not exist", title)
	return content
}

func statuses(s *runner.Summary) map[string]runner.Status {
	out := make(map[string]runner.Status, len(s.Results))
	for _, r := range s.Results {
		out[r.Job] = r.Status
	}
	return out
}

func TestRunner_FirstRunCopiesEveryJob(t *testing.T) {
	f := newFixture(t, newsJob(), ephemerisJob())
	f.quiet()

	summary := f.run(t, runner.Options{})
	assert.Equal(t, map[string]runner.Status{
		"news":      runner.StatusWritten,
		"ephemeris": runner.StatusWritten,
	}, statuses(summary))
	assert.NotEmpty(t, summary.RunID)

	assert.Equal(t, section("Nouvelles {{expanded:Date}}"), f.content(t, newsTarget))
	assert.Equal(t, section("Ce jour-là"), f.content(t, ephemerisTarget))
	assert.True(t, summary.ReportWritten)
	assert.Equal(t, "<!-- Aucune erreur -->", f.content(t, reportTitle))

	st := f.state(t)
	assert.Equal(t, "<!-- Aucune erreur -->", st.ReportedErrors)
	assert.NotEmpty(t, st.Cursor("news").Token)
	assert.Equal(t, newsSource, st.Cursor("news").Source)
	assert.Equal(t, today, st.Cursor("ephemeris").Source)

	f.clock.Advance(time.Hour)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, map[string]runner.Status{
		"news":      runner.StatusIdle,
		"ephemeris": runner.StatusIdle,
	}, statuses(summary))
	assert.False(t, summary.ReportWritten)
	assert.Equal(t, 2, f.wiki.Calls().Fetch, "jobs at the same position share one feed read per run")
}

func TestRunner_SettlesBeforeCopying(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()
	f.run(t, runner.Options{})
	token := f.state(t).Cursor("news").Token

	f.wiki.SetPage(newsSource, "Nouvelles fraîches", "Bob")
	f.clock.Advance(time.Minute)
	summary := f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusSettling, summary.Results[0].Status)
	assert.Equal(t, token, f.state(t).Cursor("news").Token, "settling keeps the feed position")
	assert.Equal(t, section("Nouvelles {{expanded:Date}}"), f.content(t, newsTarget))

	f.clock.Advance(5 * time.Minute)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.Equal(t, section("Nouvelles fraîches"), f.content(t, newsTarget))
	assert.NotEqual(t, token, f.state(t).Cursor("news").Token)
}

func TestRunner_TrustedEditorsSkipSettling(t *testing.T) {
	f := newFixture(t, newsJob())
	f.cfg.TrustedEditors = []string{"Bob"}
	f.build()
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(newsSource, "Nouvelles fraîches", "Bob")
	summary := f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
}

func TestRunner_FailuresAreSticky(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(newsSource, "#REDIRECTION [[Ailleurs]]", "Bob")
	f.clock.Advance(10 * time.Minute)
	summary := f.run(t, runner.Options{})
	require.Equal(t, runner.StatusFailed, summary.Results[0].Status)
	want := "* Erreur lors de la copie de [[Modèle:Accueil actualité]] vers " +
		"[[Wikipédia:Accueil principal/Actualités]] : la page source est une redirection\n"
	assert.Equal(t, want, f.content(t, reportTitle))
	assert.Equal(t, section("Nouvelles {{expanded:Date}}"), f.content(t, newsTarget))

	f.clock.Advance(time.Hour)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusIdle, summary.Results[0].Status)
	assert.NotEmpty(t, summary.Results[0].Failure)
	assert.False(t, summary.ReportWritten)
	assert.Equal(t, want, f.content(t, reportTitle))

	f.wiki.SetPage(newsSource, "Corrigé", "Bob")
	f.clock.Advance(10 * time.Minute)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.True(t, summary.ReportWritten)
	assert.Equal(t, "<!-- Aucune erreur -->", f.content(t, reportTitle))
	assert.Empty(t, f.state(t).Cursor("news").Failure)
}

func TestRunner_RecentDependencyRetries(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(newsSource, "Nouvelles {{Bandeau}}", "Bob")
	f.clock.Advance(10 * time.Minute)
	f.wiki.SetPage("Modèle:Bandeau", "bandeau", "Carol")
	f.clock.Advance(10 * time.Minute)
	token := f.state(t).Cursor("news").Token

	summary := f.run(t, runner.Options{})
	require.Equal(t, runner.StatusFailed, summary.Results[0].Status)
	var fresh *domain.FreshnessError
	assert.ErrorAs(t, summary.Results[0].Err, &fresh)
	assert.Equal(t, token, f.state(t).Cursor("news").Token)

	f.clock.Advance(time.Hour)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.Equal(t, section("Nouvelles {{expanded:Bandeau}}"), f.content(t, newsTarget))
}

func TestRunner_DependencyEditedAfterSettleWindow(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()
	f.run(t, runner.Options{})
	require.Equal(t, domain.DefaultDependencyQuietPeriod, f.cfg.Jobs[0].DependencyQuietPeriod)

	f.wiki.SetPage(newsSource, "Nouvelles {{Bandeau}}", "Bob")
	f.clock.Advance(time.Minute)
	f.wiki.SetPage("Modèle:Bandeau", "bandeau", "Carol")
	f.clock.Advance(domain.DefaultQuietPeriod)

	summary := f.run(t, runner.Options{})
	require.Equal(t, runner.StatusFailed, summary.Results[0].Status)
	var fresh *domain.FreshnessError
	require.ErrorAs(t, summary.Results[0].Err, &fresh)
	assert.Equal(t, "Modèle:Bandeau", fresh.Template)
	assert.Equal(t, section("Nouvelles {{expanded:Date}}"), f.content(t, newsTarget))
}

func TestRunner_TransportErrorsLeaveCursor(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()
	f.run(t, runner.Options{})
	before := f.state(t).Cursor("news")

	f.wiki.SetPage(newsSource, "Nouvelles fraîches", "Bob")
	f.clock.Advance(10 * time.Minute)
	f.wiki.Fail(memwiki.OpExpand, errors.New("timeout"))

	summary, err := f.runner.Run(context.Background(), runner.Options{})
	require.ErrorIs(t, err, domain.ErrRunIncomplete)
	assert.Equal(t, runner.StatusDeferred, summary.Results[0].Status)
	assert.Equal(t, 1, summary.Deferred)
	assert.Equal(t, before, f.state(t).Cursor("news"))

	f.wiki.Fail(memwiki.OpExpand, nil)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
}

func TestRunner_InvalidTokenRestartsFromHead(t *testing.T) {
	f := newFixture(t, newsJob())
	f.logger.EXPECT().Warn(gomock.Regex(`discarding invalid feed token "999"`))
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	st := domain.NewState()
	st.SetCursor("news", domain.SyncCursor{Token: "999", Source: newsSource})
	require.NoError(t, f.states.Save(f.statePath, st))

	summary := f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.NotEqual(t, "999", f.state(t).Cursor("news").Token)
}

func TestRunner_DryRun(t *testing.T) {
	f := newFixture(t, newsJob())
	f.quiet()

	summary := f.run(t, runner.Options{DryRun: true})
	require.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	require.NotNil(t, summary.Results[0].Edit)
	assert.Equal(t, section("Nouvelles {{expanded:Date}}"), summary.Results[0].Edit.Content)
	assert.Equal(t, section("old"), f.content(t, newsTarget))
	assert.Zero(t, f.wiki.Calls().Edit)

	_, err := os.Stat(f.statePath)
	assert.True(t, os.IsNotExist(err), "a dry run does not save state")
}

func TestRunner_JobFilter(t *testing.T) {
	f := newFixture(t, newsJob(), ephemerisJob())
	f.quiet()

	summary := f.run(t, runner.Options{Jobs: []string{"ephemeris"}})
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "ephemeris", summary.Results[0].Job)
	assert.Equal(t, section("old"), f.content(t, newsTarget))

	_, err := f.runner.Run(context.Background(), runner.Options{Jobs: []string{"unknown"}})
	assert.ErrorIs(t, err, domain.ErrUnknownJob)
}

func TestRunner_Placeholder(t *testing.T) {
	f := newFixture(t, featuredJob())
	f.quiet()
	f.wiki.SetPage(featuredIndex, "{{Lumière sur/Accueil|01a=Paris|01b=}}", "Alice")
	f.clock.Advance(time.Hour)

	summary := f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.Equal(t, section("<!-- Pas de second article -->"), f.content(t, featuredTarget))
	assert.Equal(t, &domain.Selection{Day: "2024-05-01"}, f.state(t).Cursor("featured-b").Selection)
	assert.Equal(t, "Mise à jour à partir de [["+featuredIndex+"]]", summary.Results[0].Edit.Summary)

	f.wiki.SetPage("Wikipédia:Lumière sur/Lyon", "Lyon !", "Alice")
	f.wiki.SetPage(featuredIndex, "{{Lumière sur/Accueil|01a=Paris|01b=Lyon}}", "Alice")
	f.clock.Advance(10 * time.Minute)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status, "an index edit refreshes the selection")
	assert.Equal(t, section("Lyon !"), f.content(t, featuredTarget))
}

func TestRunner_PrecachesTomorrow(t *testing.T) {
	f := newFixture(t, ephemerisJob())
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(tomorrow, "Le lendemain", "Bob")
	f.clock.Advance(10 * time.Minute)
	summary := f.run(t, runner.Options{})
	assert.Equal(t, []string{tomorrow}, summary.Precached)
	assert.Empty(t, f.state(t).Precache)
	expansions := f.wiki.Calls().Expand

	f.clock.Advance(24 * time.Hour)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, runner.StatusWritten, summary.Results[0].Status)
	assert.Equal(t, section("Le lendemain"), f.content(t, ephemerisTarget))
	assert.Equal(t, expansions, f.wiki.Calls().Expand, "the display day reuses the pre-cached expansion")
}

func TestRunner_PrecacheUsesJobTTL(t *testing.T) {
	job := ephemerisJob()
	job.CacheTTL = time.Hour
	f := newFixture(t, job)
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(tomorrow, "Le lendemain", "Bob")
	f.clock.Advance(10 * time.Minute)
	summary := f.run(t, runner.Options{})
	require.Equal(t, []string{tomorrow}, summary.Precached)
	expansions := f.wiki.Calls().Expand

	f.clock.Advance(2 * time.Hour)
	st := f.state(t)
	st.PushPrecache(tomorrow)
	require.NoError(t, f.states.Save(f.statePath, st))

	summary = f.run(t, runner.Options{})
	assert.Equal(t, []string{tomorrow}, summary.Precached)
	assert.Equal(t, expansions+1, f.wiki.Calls().Expand, "entries older than the job TTL are expanded again")
}

func TestRunner_PrecacheKeepsFailedPages(t *testing.T) {
	f := newFixture(t, ephemerisJob())
	f.quiet()
	f.run(t, runner.Options{})

	f.wiki.SetPage(tomorrow, "Le lendemain", "Bob")
	f.clock.Advance(10 * time.Minute)
	f.wiki.Fail(memwiki.OpExpand, errors.New("timeout"))

	summary, err := f.runner.Run(context.Background(), runner.Options{})
	require.ErrorIs(t, err, domain.ErrRunIncomplete)
	assert.Empty(t, summary.Precached)
	assert.Equal(t, []string{tomorrow}, f.state(t).Precache)

	f.wiki.Fail(memwiki.OpExpand, nil)
	summary = f.run(t, runner.Options{})
	assert.Equal(t, []string{tomorrow}, summary.Precached)
	assert.Empty(t, f.state(t).Precache)
}

func TestRunner_StatusReportGolden(t *testing.T) {
	f := newFixture(t, newsJob(), ephemerisJob(), featuredJob())
	f.quiet()
	f.wiki.DeletePage(newsSource, "Bob")
	f.wiki.SetPage(today, `<templatestyles src="Éphéméride/styles.css" />Ce jour-là`, "Bob")
	f.clock.Advance(time.Hour)

	summary := f.run(t, runner.Options{})
	assert.Equal(t, map[string]runner.Status{
		"news":       runner.StatusFailed,
		"ephemeris":  runner.StatusFailed,
		"featured-b": runner.StatusFailed,
	}, statuses(summary))

	g := goldie.New(t)
	g.Assert(t, "status_report", []byte(f.content(t, reportTitle)))
}
