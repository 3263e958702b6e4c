package selector_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/l10n"
	"go.trai.ch/mirror/internal/adapters/memwiki"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/engine/selector"
)

const index = "Wikipédia:Lumière sur/Mai 2024"

var (
	day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ns  = domain.Namespaces{Template: "Modèle", Names: []string{"Wikipédia"}}
)

func featuredJob(slot string, optional bool) domain.MirrorJob {
	return domain.MirrorJob{
		Name:     "featured-" + slot,
		Target:   "Wikipédia:Accueil principal/Lumière sur " + slot,
		Upstream: []string{"Modèle:Lumière sur/Bandeau"},
		Selector: domain.ContentSelector{
			Kind:         domain.SelectDayIndexed,
			IndexPattern: "Wikipédia:Lumière sur/{Month} {year}",
			Template:     "Lumière sur/Accueil",
			ParamPattern: "{dd}" + slot,
			SourcePrefix: "Wikipédia:Lumière sur/",
			Optional:     optional,
			Placeholder:  "<!-- Pas de second article -->",
			Precache:     true,
		},
	}
}

func setup(t *testing.T) (*selector.Selector, *memwiki.Wiki) {
	t.Helper()
	loc, err := l10n.New("fr")
	require.NoError(t, err)
	wiki := memwiki.New(clockwork.NewFakeClockAt(day), ns)
	return selector.New(wiki, loc, ns), wiki
}

func TestSelector_Identity(t *testing.T) {
	s, _ := setup(t)
	job := domain.MirrorJob{Source: "Modèle:Accueil actualité", Upstream: []string{"Modèle:Bandeau"}}

	res, sel, err := s.Resolve(context.Background(), job, day, nil, false)
	require.NoError(t, err)
	assert.Nil(t, sel)
	assert.Equal(t, "Modèle:Accueil actualité", res.Source)
	assert.Equal(t, []string{"Modèle:Accueil actualité", "Modèle:Bandeau"}, res.Watch)
	assert.False(t, res.UsesPlaceholder())
}

func TestSelector_Daily(t *testing.T) {
	s, _ := setup(t)
	job := domain.MirrorJob{Selector: domain.ContentSelector{
		Kind:         domain.SelectDaily,
		TitlePattern: "Wikipédia:Éphéméride/{dayOrdinal} {month}",
		PrecacheDays: 2,
	}}

	res, _, err := s.Resolve(context.Background(), job, day, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "Wikipédia:Éphéméride/1er mai", res.Source)
	assert.True(t, res.Watches("Wikipédia:Éphéméride/1er mai"))

	assert.True(t, s.ShouldPrecache(job, "Wikipédia:Éphéméride/2 mai", day))
	assert.True(t, s.ShouldPrecache(job, "Wikipédia:Éphéméride/3 mai", day))
	assert.False(t, s.ShouldPrecache(job, "Wikipédia:Éphéméride/4 mai", day))
	assert.False(t, s.ShouldPrecache(job, "Wikipédia:Éphéméride/1er mai", day), "today is copied directly")
}

func TestSelector_DayIndexed(t *testing.T) {
	s, wiki := setup(t)
	wiki.SetPage(index, "{{Lumière sur/Accueil\n|01a = Paris\n|01b=\n|02a=Lyon}}", "Alice")

	res, sel, err := s.Resolve(context.Background(), featuredJob("a", false), day, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "Wikipédia:Lumière sur/Paris", res.Source)
	assert.Equal(t, index, res.Index)
	assert.Equal(t, []string{index, "Wikipédia:Lumière sur/Paris", "Modèle:Lumière sur/Bandeau"}, res.Watch)
	assert.Equal(t, &domain.Selection{Day: "2024-05-01", Source: "Wikipédia:Lumière sur/Paris"}, sel)

	res, sel, err = s.Resolve(context.Background(), featuredJob("b", true), day, nil, false)
	require.NoError(t, err)
	assert.True(t, res.UsesPlaceholder())
	assert.Equal(t, "<!-- Pas de second article -->", res.Placeholder)
	assert.Equal(t, "", sel.Source)
}

func TestSelector_DayIndexedCache(t *testing.T) {
	s, wiki := setup(t)
	wiki.SetPage(index, "{{Lumière sur/Accueil|01a=Lyon}}", "Alice")
	cached := &domain.Selection{Day: "2024-05-01", Source: "Wikipédia:Lumière sur/Paris"}

	res, sel, err := s.Resolve(context.Background(), featuredJob("a", false), day, cached, false)
	require.NoError(t, err)
	assert.Equal(t, "Wikipédia:Lumière sur/Paris", res.Source)
	assert.Same(t, cached, sel)
	assert.Zero(t, wiki.Calls().Read)

	res, _, err = s.Resolve(context.Background(), featuredJob("a", false), day, cached, true)
	require.NoError(t, err)
	assert.Equal(t, "Wikipédia:Lumière sur/Lyon", res.Source, "a changed index page refreshes the selection")

	res, _, err = s.Resolve(context.Background(), featuredJob("a", false), day.AddDate(0, 0, 1), cached, false)
	var selErr *domain.SelectionError
	require.ErrorAs(t, err, &selErr, "a new day reads the index again")
	assert.Equal(t, domain.MsgNoValueForDay, selErr.Message.Key)
	assert.Equal(t, domain.Resolution{}, res)
}

func TestSelector_DayIndexedErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
		wantArg any
	}{
		{name: "missing index", wantKey: domain.MsgIndexMissing},
		{
			name:    "missing template",
			content: "{{Autre|01a=Paris}}",
			wantKey: domain.MsgIndexTemplateMissing,
			wantArg: "Lumière sur/Accueil",
		},
		{
			name:    "no value",
			content: "{{Lumière sur/Accueil|02a=Paris}}",
			wantKey: domain.MsgNoValueForDay,
			wantArg: "1er mai 2024",
		},
		{
			name:    "not main namespace",
			content: "{{lumière_sur/Accueil|01a=Wikipédia:Accueil}}",
			wantKey: domain.MsgNotMainNamespace,
			wantArg: "[[Wikipédia:Accueil]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, wiki := setup(t)
			if tt.content != "" {
				wiki.SetPage(index, tt.content, "Alice")
			}

			_, _, err := s.Resolve(context.Background(), featuredJob("a", false), day, nil, false)
			var selErr *domain.SelectionError
			require.ErrorAs(t, err, &selErr)
			assert.Equal(t, index, selErr.Index)
			assert.Equal(t, tt.wantKey, selErr.Message.Key)
			if tt.wantArg != nil {
				assert.Equal(t, []any{tt.wantArg}, selErr.Message.Args)
			}
		})
	}
}

func TestSelector_DayIndexedStoreFailure(t *testing.T) {
	s, wiki := setup(t)
	boom := errors.New("boom")
	wiki.Fail(memwiki.OpReadPage, boom)

	_, _, err := s.Resolve(context.Background(), featuredJob("a", false), day, nil, false)
	assert.ErrorIs(t, err, boom)
	var transport *domain.TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestSelector_ShouldPrecacheDayIndexed(t *testing.T) {
	s, _ := setup(t)
	job := featuredJob("a", false)

	assert.True(t, s.ShouldPrecache(job, "Wikipédia:Lumière sur/Marseille", day))
	assert.False(t, s.ShouldPrecache(job, index, day))
	assert.False(t, s.ShouldPrecache(job, "Modèle:Lumière sur/Bandeau", day))
	assert.False(t, s.ShouldPrecache(domain.MirrorJob{Source: "A"}, "A", day))
}
