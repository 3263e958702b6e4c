package memwiki_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mirror/internal/adapters/memwiki"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

var _ ports.Wiki = (*memwiki.Wiki)(nil)

var _ ports.WikiConnector = memwiki.Connector{}

func newWiki() (*memwiki.Wiki, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return memwiki.New(clock, domain.Namespaces{Template: "Modèle"}), clock
}

func TestWiki_PagesAndEdits(t *testing.T) {
	ctx := context.Background()
	w, clock := newWiki()

	rev := w.SetPage("Cible", "old", "Alice")
	clock.Advance(time.Minute)

	page, err := w.ReadPage(ctx, "Cible")
	require.NoError(t, err)
	assert.Equal(t, rev, page.RevID)
	assert.Equal(t, "Alice", page.User)

	require.NoError(t, w.EditPage(ctx, domain.Edit{Title: "Cible", Content: "new", BaseRevID: rev}))
	content, ok := w.Content("Cible")
	require.True(t, ok)
	assert.Equal(t, "new", content)
	assert.Equal(t, memwiki.DefaultBotUser, w.History("Cible")[1].User)

	err = w.EditPage(ctx, domain.Edit{Title: "Cible", Content: "stale", BaseRevID: rev})
	assert.ErrorIs(t, err, domain.ErrEditConflict)
	var transport *domain.TransportError
	assert.True(t, errors.As(err, &transport))

	err = w.EditPage(ctx, domain.Edit{Title: "Missing", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	require.NoError(t, w.EditPage(ctx, domain.Edit{Title: "Missing", Content: "x", Create: true}))
	content, ok = w.Content("Missing")
	require.True(t, ok)
	assert.Equal(t, "x", content)
}

func TestWiki_Redirect(t *testing.T) {
	w, _ := newWiki()
	w.SetPage("Source", "#REDIRECTION [[Ailleurs]]", "Alice")

	page, err := w.ReadPage(context.Background(), "Source")
	require.NoError(t, err)
	assert.True(t, page.Redirect)
}

func TestWiki_Expansion(t *testing.T) {
	ctx := context.Background()
	w, _ := newWiki()

	code, err := w.Expand(ctx, "{{PAGENAME}} {{REVISIONID}} {{A|x}}", "Source", 12)
	require.NoError(t, err)
	assert.Equal(t, "Source 12 {{expanded:A|x}}", code)

	templates, err := w.ListDirectTemplates(ctx, "{{b}} {{A|x}} {{B}} {{Module:X}}", "Source", 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"Modèle:B", "Modèle:A", "Modèle:Module:X"}, templates)
	assert.Equal(t, 1, w.Calls().Expand)
	assert.Equal(t, 1, w.Calls().ListTemplates)
}

func TestWiki_Feed(t *testing.T) {
	ctx := context.Background()
	w, clock := newWiki()

	w.SetPage("A", "1", "Alice")
	head, err := w.Fetch(ctx, domain.FeedRequest{})
	require.NoError(t, err)
	assert.Empty(t, head.Events)

	clock.Advance(time.Minute)
	w.SetPage("A", "2", "Bob")
	w.MovePage("A", "B", "Bob")

	page, err := w.Fetch(ctx, domain.FeedRequest{Token: head.NextToken})
	require.NoError(t, err)
	require.Len(t, page.Events, 2)
	assert.Equal(t, domain.EventEdit, page.Events[0].Type)
	assert.Equal(t, []string{"A", "B"}, page.Events[1].Titles())

	since, err := w.Fetch(ctx, domain.FeedRequest{Since: clock.Now()})
	require.NoError(t, err)
	assert.Len(t, since.Events, 2)

	_, err = w.Fetch(ctx, domain.FeedRequest{Token: "99"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestWiki_Protections(t *testing.T) {
	w, _ := newWiki()
	w.Protect("S1", domain.Protection{Type: domain.ProtectEdit, Level: domain.LevelSysop})
	w.HideProtections("S3")

	got, err := w.ReadProtections(context.Background(), []string{"S1", "S2", "S3"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]domain.Protection{
		"S1": {{Type: domain.ProtectEdit, Level: domain.LevelSysop}},
		"S2": {},
	}, got)
}

func TestWiki_Fail(t *testing.T) {
	w, _ := newWiki()
	w.SetPage("A", "x", "Alice")
	boom := errors.New("boom")

	w.Fail(memwiki.OpReadPage, boom)
	_, err := w.ReadPage(context.Background(), "A")
	assert.ErrorIs(t, err, boom)

	w.Fail(memwiki.OpReadPage, nil)
	_, err = w.ReadPage(context.Background(), "A")
	assert.NoError(t, err)
}
