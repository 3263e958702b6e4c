package runner

import (
	"context"
	"slices"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

// feedReader memoizes change feed pages by token for the duration of a run, so that jobs
// sharing a cursor position read the feed once.
type feedReader struct {
	feed  ports.ChangeFeed
	pages map[string]*domain.FeedPage
	order []string
}

func newFeedReader(feed ports.ChangeFeed) *feedReader {
	return &feedReader{feed: feed, pages: make(map[string]*domain.FeedPage)}
}

func (r *feedReader) fetch(ctx context.Context, token string) (*domain.FeedPage, error) {
	if page, ok := r.pages[token]; ok {
		return page, nil
	}
	page, err := r.feed.Fetch(ctx, domain.FeedRequest{Token: token})
	if err != nil {
		return nil, err
	}
	r.pages[token] = page
	r.order = append(r.order, token)
	return page, nil
}

// titles returns every title touched by the pages read so far, in feed order.
func (r *feedReader) titles() []string {
	var out []string
	for _, token := range r.order {
		for _, e := range r.pages[token].Events {
			for _, title := range e.Titles() {
				if !slices.Contains(out, title) {
					out = append(out, title)
				}
			}
		}
	}
	return out
}

func touches(events []domain.ChangeEvent, title string) bool {
	if title == "" {
		return false
	}
	for _, e := range events {
		if slices.Contains(e.Titles(), title) {
			return true
		}
	}
	return false
}
