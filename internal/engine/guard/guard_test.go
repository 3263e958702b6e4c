package guard_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/memwiki"
	"go.trai.ch/mirror/internal/adapters/sqlite"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/engine/expansion"
	"go.trai.ch/mirror/internal/engine/freshness"
	"go.trai.ch/mirror/internal/engine/guard"
	"go.trai.ch/mirror/internal/wikitext"
)

const (
	source = "Modèle:Accueil actualité"
	target = "Wikipédia:Accueil principal/Actualités"
	sheet  = "Modèle:Accueil actualité/styles.css"
)

var (
	start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ns    = domain.Namespaces{Template: "Modèle", Names: []string{"Wikipédia"}}
)

type env struct {
	clock *clockwork.FakeClock
	wiki  *memwiki.Wiki
	guard *guard.Guard
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := clockwork.NewFakeClockAt(start)
	wiki := memwiki.New(clock, ns)
	store, err := sqlite.Open(domain.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cache := expansion.New(store, wiki, freshness.NewResolver(wiki), clock)
	e := &env{
		clock: clock,
		wiki:  wiki,
		guard: guard.New(wiki, cache, ns, []string{"TrustedBot"}),
	}
	wiki.SetPage(target, "Intro\n"+wikitext.BeginMarker+"\nold\n"+wikitext.EndMarker+"\n", "Alice")
	return e
}

func job() domain.MirrorJob {
	return domain.MirrorJob{Name: "news", Source: source, Target: target}.WithDefaults()
}

func (e *env) attempt(cursor domain.SyncCursor, events ...domain.ChangeEvent) guard.Attempt {
	return guard.Attempt{
		Job:        job(),
		Resolution: domain.Resolution{Source: source, Watch: []string{source}},
		Cursor:     cursor,
		Events:     events,
		Now:        e.clock.Now(),
	}
}

func edit(title, user string, at time.Time) domain.ChangeEvent {
	return domain.ChangeEvent{Type: domain.EventEdit, Title: title, User: user, Timestamp: at}
}

func TestGuard_Ready(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "<noinclude>doc</noinclude>{{Bandeau}}", "Alice")
	e.clock.Advance(time.Hour)

	d, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	require.NoError(t, err)
	assert.Equal(t, guard.Ready, d.Verdict)
	assert.Equal(t, "{{expanded:Bandeau}}", d.Code)
	assert.Equal(t, source, d.Source.Title)
	assert.Equal(t, target, d.Target.Title)
	assert.False(t, d.Expansion.FromCache)
}

func TestGuard_Idle(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "text", "Alice")
	e.clock.Advance(time.Hour)
	cursor := domain.SyncCursor{Token: "3", Source: source}

	d, err := e.guard.Check(context.Background(), e.attempt(cursor, edit("Autre page", "Bob", start)))
	require.NoError(t, err)
	assert.Equal(t, guard.Idle, d.Verdict)
	assert.Zero(t, e.wiki.Calls().Read)
}

func TestGuard_DatedSourceChangeIsRelevant(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "text", "Alice")
	e.clock.Advance(time.Hour)

	a := e.attempt(domain.SyncCursor{Token: "3", Source: "Modèle:Hier"})
	a.Job.Selector = domain.ContentSelector{Kind: domain.SelectDaily, TitlePattern: "Modèle:{day}"}

	d, err := e.guard.Check(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, guard.Ready, d.Verdict)

	a.Job.Selector = domain.ContentSelector{}
	d, err = e.guard.Check(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, guard.Idle, d.Verdict, "identity jobs only follow the feed")
}

func TestGuard_Settling(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		ago    time.Duration
		want   guard.Verdict
		wantLE bool
	}{
		{name: "recent edit", user: "Bob", ago: 4 * time.Minute, want: guard.Settling, wantLE: true},
		{name: "settled edit", user: "Bob", ago: 5 * time.Minute, want: guard.Ready, wantLE: true},
		{name: "trusted editor", user: "TrustedBot", ago: time.Minute, want: guard.Ready},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.wiki.SetPage(source, "text", "Alice")
			e.clock.Advance(time.Hour)
			at := e.clock.Now().Add(-tt.ago)

			d, err := e.guard.Check(context.Background(),
				e.attempt(domain.SyncCursor{Token: "3", Source: source}, edit(source, tt.user, at)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Verdict)
			if tt.wantLE {
				assert.Equal(t, at, d.LastEdit)
			} else {
				assert.True(t, d.LastEdit.IsZero())
			}
		})
	}
}

func TestGuard_SettlingOnRevision(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "text", "Alice")
	e.clock.Advance(2 * time.Minute)

	d, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	require.NoError(t, err)
	assert.Equal(t, guard.Settling, d.Verdict)
	assert.Zero(t, e.wiki.Calls().Expand)

	e.wiki.SetPage(source, "text 2", "TrustedBot")
	d, err = e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	require.NoError(t, err)
	assert.Equal(t, guard.Ready, d.Verdict)
}

func TestGuard_SourceValidation(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		limit    int
		wantKey  string
		wantArgs []any
	}{
		{name: "missing", wantKey: domain.MsgSourceMissing},
		{name: "redirect", content: "#REDIRECTION [[Modèle:Ailleurs]]", wantKey: domain.MsgSourceRedirect},
		{
			name:     "too long",
			content:  strings.Repeat("a", 2500),
			limit:    2000,
			wantKey:  domain.MsgSourceTooLong,
			wantArgs: []any{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.content != "" {
				e.wiki.SetPage(source, tt.content, "Alice")
			}
			e.clock.Advance(time.Hour)
			a := e.attempt(domain.SyncCursor{})
			a.Job.MaxSourceLength = tt.limit

			_, err := e.guard.Check(context.Background(), a)
			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantKey, validation.Message.Key)
			assert.Equal(t, tt.wantArgs, validation.Message.Args)
		})
	}
}

func TestGuard_LengthIgnoresNoinclude(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "short<noinclude>"+strings.Repeat("doc", 1000)+"</noinclude>", "Alice")
	e.clock.Advance(time.Hour)
	a := e.attempt(domain.SyncCursor{})
	a.Job.MaxSourceLength = 100

	d, err := e.guard.Check(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, guard.Ready, d.Verdict)
}

func TestGuard_Freshness(t *testing.T) {
	tests := []struct {
		name      string
		depOffset time.Duration // dependency edit relative to the source edit
		elapsed   time.Duration // time since the dependency edit
		wantErr   bool
	}{
		{name: "recent dependency", depOffset: time.Minute, elapsed: 30 * time.Minute, wantErr: true},
		{name: "same timestamp", depOffset: 0, elapsed: 30 * time.Minute, wantErr: true},
		{name: "quiet period reached", depOffset: time.Minute, elapsed: time.Hour, wantErr: true},
		{name: "quiet period elapsed", depOffset: time.Minute, elapsed: time.Hour + time.Second},
		{name: "older dependency", depOffset: -time.Minute, elapsed: 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if tt.depOffset < 0 {
				e.wiki.SetPage("Modèle:Bandeau", "b", "Bob")
				e.clock.Advance(-tt.depOffset)
				e.wiki.SetPage(source, "{{Bandeau}}", "Alice")
			} else {
				e.wiki.SetPage(source, "{{Bandeau}}", "Alice")
				e.clock.Advance(tt.depOffset)
				e.wiki.SetPage("Modèle:Bandeau", "b", "Bob")
			}
			e.clock.Advance(tt.elapsed)

			_, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var fresh *domain.FreshnessError
			require.ErrorAs(t, err, &fresh)
			assert.Equal(t, "Modèle:Bandeau", fresh.Template)
			assert.Equal(t, source, fresh.Source)
		})
	}
}

func TestGuard_Policy(t *testing.T) {
	nextYear := start.AddDate(1, 0, 0)

	tests := []struct {
		name     string
		setup    func(w *memwiki.Wiki)
		wantKind []domain.ViolationKind
	}{
		{
			name: "indefinite sysop",
			setup: func(w *memwiki.Wiki) {
				w.Protect(sheet, domain.Protection{Type: domain.ProtectEdit, Level: domain.LevelSysop})
			},
		},
		{
			name: "extended with distant expiry",
			setup: func(w *memwiki.Wiki) {
				w.Protect(sheet, domain.Protection{Type: domain.ProtectEdit, Level: domain.LevelExtended, Expiry: nextYear})
			},
		},
		{
			name:     "unprotected",
			setup:    func(*memwiki.Wiki) {},
			wantKind: []domain.ViolationKind{domain.ViolationUnprotected},
		},
		{
			name: "move protection only",
			setup: func(w *memwiki.Wiki) {
				w.Protect(sheet, domain.Protection{Type: domain.ProtectMove, Level: domain.LevelSysop})
			},
			wantKind: []domain.ViolationKind{domain.ViolationUnprotected},
		},
		{
			name: "semi-protection",
			setup: func(w *memwiki.Wiki) {
				w.Protect(sheet, domain.Protection{Type: domain.ProtectEdit, Level: domain.LevelAutoconfirmed})
			},
			wantKind: []domain.ViolationKind{domain.ViolationInsufficientLevel},
		},
		{
			name: "expiring soon",
			setup: func(w *memwiki.Wiki) {
				w.Protect(sheet, domain.Protection{
					Type:   domain.ProtectEdit,
					Level:  domain.LevelSysop,
					Expiry: start.Add(2 * 24 * time.Hour),
				})
			},
			wantKind: []domain.ViolationKind{domain.ViolationExpiringSoon},
		},
		{
			name:     "unverifiable",
			setup:    func(w *memwiki.Wiki) { w.HideProtections(sheet) },
			wantKind: []domain.ViolationKind{domain.ViolationUnverifiable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.wiki.SetPage(source, `<templatestyles src="Accueil actualité/styles.css" />texte`, "Alice")
			e.clock.Advance(time.Hour)
			tt.setup(e.wiki)

			d, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
			if tt.wantKind == nil {
				require.NoError(t, err)
				assert.Equal(t, guard.Ready, d.Verdict)
				return
			}
			var policy *domain.PolicyError
			require.ErrorAs(t, err, &policy)
			require.Len(t, policy.Violations, len(tt.wantKind))
			for i, kind := range tt.wantKind {
				assert.Equal(t, kind, policy.Violations[i].Kind)
				assert.Equal(t, sheet, policy.Violations[i].Title)
			}
		})
	}
}

func TestGuard_PolicyAggregates(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source,
		`<templatestyles src="B/styles.css"/><templatestyles src="A/styles.css"/><templatestyles src="B/styles.css"/>`,
		"Alice")
	e.clock.Advance(time.Hour)
	e.wiki.HideProtections("Modèle:B/styles.css")

	_, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	var policy *domain.PolicyError
	require.ErrorAs(t, err, &policy)
	assert.Equal(t, []domain.PolicyViolation{
		{Kind: domain.ViolationUnprotected, Title: "Modèle:A/styles.css"},
		{Kind: domain.ViolationUnverifiable, Title: "Modèle:B/styles.css"},
	}, policy.Violations)
	assert.Equal(t, 1, e.wiki.Calls().Protections)
}

func TestGuard_Target(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "text", "Alice")
	e.wiki.SetPage(target, "no section here", "Alice")
	e.clock.Advance(time.Hour)

	_, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, domain.MsgBotSectionNotFound, validation.Message.Key)
	assert.Equal(t, []any{"[[" + target + "]]"}, validation.Message.Args)

	e.wiki.DeletePage(target, "Bob")
	_, err = e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, domain.MsgTargetMissing, validation.Message.Key)
}

func TestGuard_Placeholder(t *testing.T) {
	e := newEnv(t)
	e.clock.Advance(time.Hour)
	a := e.attempt(domain.SyncCursor{})
	a.Resolution = domain.Resolution{Placeholder: "<!-- vide -->", Watch: []string{"Index"}}

	d, err := e.guard.Check(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, guard.Ready, d.Verdict)
	assert.Equal(t, "<!-- vide -->", d.Code)
	assert.Nil(t, d.Source)
	assert.Equal(t, 1, e.wiki.Calls().Read, "only the target is read")
}

func TestGuard_TransportErrors(t *testing.T) {
	e := newEnv(t)
	e.wiki.SetPage(source, "{{Bandeau}}", "Alice")
	e.clock.Advance(time.Hour)
	boom := errors.New("boom")
	e.wiki.Fail(memwiki.OpExpand, boom)

	_, err := e.guard.Check(context.Background(), e.attempt(domain.SyncCursor{}))
	var transport *domain.TransportError
	require.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, err, boom)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "idle", guard.Idle.String())
	assert.Equal(t, "settling", guard.Settling.String())
	assert.Equal(t, "ready", guard.Ready.String())
}
