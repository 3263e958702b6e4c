// Package memwiki is an in-memory wiki implementing ports.Wiki for tests and dry runs.
//
// Template expansion is simulated: {{PAGENAME}} and {{REVISIONID}} are substituted and every
// other "{{" becomes "{{expanded:", so expanded code stays recognisable. Direct templates are
// the names of the template calls of the code, normalized into the template namespace.
package memwiki

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/wikitext"
	"go.trai.ch/zerr"
)

// Op names the operations errors can be injected into.
type Op string

// Operations.
const (
	OpReadPage        Op = "read"
	OpReadTimestamps  Op = "timestamps"
	OpReadProtections Op = "protections"
	OpEdit            Op = "edit"
	OpExpand          Op = "expand"
	OpListTemplates   Op = "templates"
	OpFetch           Op = "fetch"
)

// DefaultBotUser is the author of edits made through EditPage.
const DefaultBotUser = "MirrorBot"

// Calls counts the calls made to the wiki.
type Calls struct {
	Read          int
	Timestamps    int
	Protections   int
	Edit          int
	Expand        int
	ListTemplates int
	Fetch         int
}

type page struct {
	revisions []domain.Revision
}

func (p *page) latest() domain.Revision {
	return p.revisions[len(p.revisions)-1]
}

// Wiki is an in-memory wiki. It is safe for concurrent use.
type Wiki struct {
	clock clockwork.Clock
	ns    domain.Namespaces
	// BotUser is recorded as the author of EditPage writes.
	BotUser string

	mu          sync.Mutex
	pages       map[string]*page
	protections map[string][]domain.Protection
	unanswered  map[string]bool
	events      []domain.ChangeEvent
	nextRevID   int64
	failures    map[Op]error
	calls       Calls
}

// New creates an empty wiki whose edits are stamped by clock.
func New(clock clockwork.Clock, ns domain.Namespaces) *Wiki {
	return &Wiki{
		clock:       clock,
		ns:          ns,
		BotUser:     DefaultBotUser,
		pages:       make(map[string]*page),
		protections: make(map[string][]domain.Protection),
		unanswered:  make(map[string]bool),
		failures:    make(map[Op]error),
		nextRevID:   1,
	}
}

// SetPage creates or edits title as user at the current time and returns the new revision id.
func (w *Wiki) SetPage(title, content, user string) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.save(title, content, user)
}

func (w *Wiki) save(title, content, user string) int64 {
	now := w.clock.Now()
	p, exists := w.pages[title]
	if !exists {
		p = &page{}
		w.pages[title] = p
	}
	_, redirect := wikitext.Redirect(content)
	rev := domain.Revision{
		Title:     title,
		RevID:     w.nextRevID,
		Timestamp: now,
		User:      user,
		Content:   content,
		Redirect:  redirect,
	}
	w.nextRevID++
	p.revisions = append(p.revisions, rev)

	eventType := domain.EventEdit
	if !exists {
		eventType = domain.EventNew
	}
	w.record(domain.ChangeEvent{Type: eventType, Title: title, User: user, Timestamp: now})
	return rev.RevID
}

// DeletePage removes title.
func (w *Wiki) DeletePage(title, user string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.pages[title]; !ok {
		return
	}
	delete(w.pages, title)
	w.record(domain.ChangeEvent{Type: domain.EventDelete, Title: title, User: user, Timestamp: w.clock.Now()})
}

// MovePage renames from to to.
func (w *Wiki) MovePage(from, to, user string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pages[from]
	if !ok {
		return
	}
	delete(w.pages, from)
	for i := range p.revisions {
		p.revisions[i].Title = to
	}
	w.pages[to] = p
	w.record(domain.ChangeEvent{Type: domain.EventMove, Title: from, NewTitle: to, User: user, Timestamp: w.clock.Now()})
}

func (w *Wiki) record(e domain.ChangeEvent) {
	e.ID = int64(len(w.events) + 1)
	w.events = append(w.events, e)
}

// Protect sets the protections of title.
func (w *Wiki) Protect(title string, protections ...domain.Protection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.protections[title] = protections
	delete(w.unanswered, title)
}

// HideProtections makes ReadProtections omit title from its answers.
func (w *Wiki) HideProtections(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unanswered[title] = true
}

// Fail makes every call of op return err until it is cleared with a nil err.
func (w *Wiki) Fail(op Op, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err == nil {
		delete(w.failures, op)
		return
	}
	w.failures[op] = err
}

// Content returns the latest content of title.
func (w *Wiki) Content(title string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pages[title]
	if !ok {
		return "", false
	}
	return p.latest().Content, true
}

// Revisions returns the number of revisions of title.
func (w *Wiki) Revisions(title string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pages[title]; ok {
		return len(p.revisions)
	}
	return 0
}

// History returns every revision of title, oldest first.
func (w *Wiki) History(title string) []domain.Revision {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pages[title]; ok {
		return slices.Clone(p.revisions)
	}
	return nil
}

// Calls returns the call counters.
func (w *Wiki) Calls() Calls {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

// ResetCalls zeroes the call counters.
func (w *Wiki) ResetCalls() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = Calls{}
}

func (w *Wiki) failure(op Op) error {
	if err, ok := w.failures[op]; ok {
		return domain.NewTransportError(string(op), err)
	}
	return nil
}

// ReadPage implements ports.DocumentStore.
func (w *Wiki) ReadPage(_ context.Context, title string) (*domain.Revision, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Read++
	if err := w.failure(OpReadPage); err != nil {
		return nil, err
	}
	p, ok := w.pages[title]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrPageNotFound, "page does not exist"), "title", title)
	}
	rev := p.latest()
	return &rev, nil
}

// ReadTimestamps implements ports.DocumentStore.
func (w *Wiki) ReadTimestamps(_ context.Context, titles []string) (map[string]time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Timestamps++
	if err := w.failure(OpReadTimestamps); err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(titles))
	for _, t := range titles {
		if p, ok := w.pages[t]; ok {
			out[t] = p.latest().Timestamp
		}
	}
	return out, nil
}

// ReadProtections implements ports.DocumentStore.
func (w *Wiki) ReadProtections(_ context.Context, titles []string) (map[string][]domain.Protection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Protections++
	if err := w.failure(OpReadProtections); err != nil {
		return nil, err
	}
	out := make(map[string][]domain.Protection, len(titles))
	for _, t := range titles {
		if w.unanswered[t] {
			continue
		}
		out[t] = slices.Clone(w.protections[t])
		if out[t] == nil {
			out[t] = []domain.Protection{}
		}
	}
	return out, nil
}

// EditPage implements ports.DocumentStore. Missing pages are created only when edit.Create is
// set.
func (w *Wiki) EditPage(_ context.Context, edit domain.Edit) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Edit++
	if err := w.failure(OpEdit); err != nil {
		return err
	}
	p, ok := w.pages[edit.Title]
	if !ok && !edit.Create {
		return zerr.With(zerr.Wrap(domain.ErrPageNotFound, "page does not exist"), "title", edit.Title)
	}
	if ok && edit.BaseRevID != 0 && p.latest().RevID != edit.BaseRevID {
		return domain.NewTransportError("edit "+edit.Title,
			zerr.With(zerr.Wrap(domain.ErrEditConflict, "page changed"), "title", edit.Title))
	}
	w.save(edit.Title, edit.Content, w.BotUser)
	return nil
}

// Expand implements ports.TemplateExpander.
func (w *Wiki) Expand(_ context.Context, code, title string, revID int64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Expand++
	if err := w.failure(OpExpand); err != nil {
		return "", err
	}
	code = strings.ReplaceAll(code, "{{PAGENAME}}", title)
	code = strings.ReplaceAll(code, "{{REVISIONID}}", strconv.FormatInt(revID, 10))
	return strings.ReplaceAll(code, "{{", "{{expanded:"), nil
}

// ListDirectTemplates implements ports.TemplateExpander.
func (w *Wiki) ListDirectTemplates(_ context.Context, code, _ string, _ int64) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.ListTemplates++
	if err := w.failure(OpListTemplates); err != nil {
		return nil, err
	}
	var out []string
	for _, name := range wikitext.TemplateNames(code) {
		title := w.ns.TemplateTitle(name)
		if !slices.Contains(out, title) {
			out = append(out, title)
		}
	}
	return out, nil
}

// Fetch implements ports.ChangeFeed. Tokens are event counts.
func (w *Wiki) Fetch(_ context.Context, req domain.FeedRequest) (*domain.FeedPage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls.Fetch++
	if err := w.failure(OpFetch); err != nil {
		return nil, err
	}
	head := strconv.Itoa(len(w.events))

	switch {
	case req.Token != "":
		n, err := strconv.Atoi(req.Token)
		if err != nil || n < 0 || n > len(w.events) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidToken, "not an event count"), "token", req.Token)
		}
		return &domain.FeedPage{Events: slices.Clone(w.events[n:]), NextToken: head}, nil
	case !req.Since.IsZero():
		var events []domain.ChangeEvent
		for _, e := range w.events {
			if !e.Timestamp.Before(req.Since) {
				events = append(events, e)
			}
		}
		return &domain.FeedPage{Events: events, NextToken: head}, nil
	default:
		return &domain.FeedPage{NextToken: head}, nil
	}
}

// Connector implements ports.WikiConnector by returning the same in-memory wiki.
type Connector struct {
	Wiki *Wiki
}

// Connect implements ports.WikiConnector.
func (c Connector) Connect(_ context.Context, _ domain.WikiSettings) (ports.Wiki, error) {
	return c.Wiki, nil
}
