package ports

import (
	"context"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
)

// DocumentStore reads and writes single wiki pages.
//
//go:generate go run go.uber.org/mock/mockgen -source=wiki.go -destination=mocks/mock_wiki.go -package=mocks
type DocumentStore interface {
	// ReadPage returns the latest revision of title.
	// It returns an error wrapping domain.ErrPageNotFound if the page does not exist.
	ReadPage(ctx context.Context, title string) (*domain.Revision, error)

	// ReadTimestamps returns the timestamp of the latest revision of each title in one batch.
	// Titles that do not exist are absent from the result.
	ReadTimestamps(ctx context.Context, titles []string) (map[string]time.Time, error)

	// ReadProtections returns the protections of each title in one batch.
	// Titles the store could not answer for are absent from the result; unprotected titles
	// map to an empty slice.
	ReadProtections(ctx context.Context, titles []string) (map[string][]domain.Protection, error)

	// EditPage replaces the content of a page. A non-zero BaseRevID makes the write fail with
	// domain.ErrEditConflict when the page changed since that revision.
	EditPage(ctx context.Context, edit domain.Edit) error
}

// TemplateExpander delegates template expansion to the wiki.
type TemplateExpander interface {
	// Expand returns code with every template expanded as if it were the content of title at
	// revision revID.
	Expand(ctx context.Context, code, title string, revID int64) (string, error)

	// ListDirectTemplates returns the templates called directly by code, without recursion,
	// in order of first appearance.
	ListDirectTemplates(ctx context.Context, code, title string, revID int64) ([]string, error)
}

// ChangeFeed reads the recent changes of the wiki.
type ChangeFeed interface {
	// Fetch returns the events after the request position and the token of the new position.
	// An empty token with a zero Since returns no events and a token at the head of the feed.
	Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error)
}

// Wiki is a connected wiki session.
type Wiki interface {
	DocumentStore
	TemplateExpander
	ChangeFeed
}

// WikiConnector opens wiki sessions.
type WikiConnector interface {
	// Connect logs in when credentials are configured and returns a session.
	Connect(ctx context.Context, settings domain.WikiSettings) (Wiki, error)
}
