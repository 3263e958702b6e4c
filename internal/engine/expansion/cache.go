// Package expansion memoizes template expansions of source revisions.
package expansion

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/wikitext"
	"golang.org/x/sync/singleflight"
)

// FreshnessResolver returns the most recently edited of a set of titles.
type FreshnessResolver interface {
	Resolve(ctx context.Context, titles []string) (domain.TemplateStamp, bool, error)
}

// Cache expands source revisions through the wiki and keeps the results in a store.
type Cache struct {
	store    ports.ExpansionStore
	expander ports.TemplateExpander
	resolver FreshnessResolver
	clock    clockwork.Clock
	ttl      time.Duration
	group    *singleflight.Group
}

// New creates a Cache with the default TTL.
func New(
	store ports.ExpansionStore,
	expander ports.TemplateExpander,
	resolver FreshnessResolver,
	clock clockwork.Clock,
) *Cache {
	return &Cache{
		store:    store,
		expander: expander,
		resolver: resolver,
		clock:    clock,
		ttl:      domain.DefaultCacheTTL,
		group:    &singleflight.Group{},
	}
}

// WithTTL returns a view of the cache that treats entries older than ttl as absent.
// A non-positive ttl keeps the current one.
func (c *Cache) WithTTL(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return c
	}
	view := *c
	view.ttl = ttl
	return &view
}

// Key returns the cache key of raw as the content of title at revID.
func Key(raw, title string, revID int64) domain.ExpansionKey {
	return domain.ExpansionKey{Title: title, RevID: revID, ContentHash: xxhash.Sum64String(raw)}
}

// Expand returns the expansion of raw, the content of title at revID. Errors of the wiki
// are returned unchanged and nothing is stored.
func (c *Cache) Expand(ctx context.Context, raw, title string, revID int64) (domain.ExpansionResult, error) {
	key := Key(raw, title, revID)

	entry, err := c.store.Lookup(ctx, key, c.clock.Now().Add(-c.ttl))
	if err != nil {
		return domain.ExpansionResult{}, err
	}
	if entry != nil {
		return entry.Result(true), nil
	}

	flight := title + "|" + strconv.FormatInt(revID, 10) + "|" + strconv.FormatUint(key.ContentHash, 16)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		return c.compute(ctx, key, raw)
	})
	if err != nil {
		return domain.ExpansionResult{}, err
	}
	return v.(domain.ExpansionEntry).Result(false), nil
}

func (c *Cache) compute(ctx context.Context, key domain.ExpansionKey, raw string) (domain.ExpansionEntry, error) {
	code := wikitext.Transclude(raw)

	expanded, err := c.expander.Expand(ctx, code, key.Title, key.RevID)
	if err != nil {
		return domain.ExpansionEntry{}, err
	}
	templates, err := c.expander.ListDirectTemplates(ctx, code, key.Title, key.RevID)
	if err != nil {
		return domain.ExpansionEntry{}, err
	}
	latest, ok, err := c.resolver.Resolve(ctx, templates)
	if err != nil {
		return domain.ExpansionEntry{}, err
	}

	entry := domain.ExpansionEntry{
		Key:          key,
		ExpandedCode: expanded,
		Templates:    templates,
		CreatedAt:    c.clock.Now(),
	}
	if ok {
		entry.LastChangedTemplate = latest.Title
		entry.LastChangedAt = latest.Timestamp
	}
	if err := c.store.Insert(ctx, entry); err != nil {
		return domain.ExpansionEntry{}, err
	}
	return entry, nil
}

// List returns the stored expansions of title, newest first.
func (c *Cache) List(ctx context.Context, title string) ([]domain.ExpansionEntry, error) {
	return c.store.List(ctx, title)
}
