package mediawiki

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// batchSize is the maximum number of titles per query for non-bot accounts.
const batchSize = 50

// infinity is the expiry of an indefinite protection.
const infinity = "infinity"

type queryPage struct {
	Title     string `json:"title"`
	Missing   bool   `json:"missing"`
	Invalid   bool   `json:"invalid"`
	Redirect  bool   `json:"redirect"`
	Revisions []struct {
		RevID     int64     `json:"revid"`
		User      string    `json:"user"`
		Timestamp time.Time `json:"timestamp"`
		Slots     struct {
			Main struct {
				Content string `json:"content"`
			} `json:"main"`
		} `json:"slots"`
	} `json:"revisions"`
	Protection []struct {
		Type   string `json:"type"`
		Level  string `json:"level"`
		Expiry string `json:"expiry"`
	} `json:"protection"`
}

type queryAnswer struct {
	Query struct {
		Normalized []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"normalized"`
		Pages []queryPage `json:"pages"`
	} `json:"query"`
}

// requested maps the titles of the answer back to the titles of the request.
func (a *queryAnswer) requested(titles []string) map[string][]string {
	out := make(map[string][]string, len(titles))
	normalized := make(map[string]string, len(a.Query.Normalized))
	for _, n := range a.Query.Normalized {
		normalized[n.From] = n.To
	}
	for _, t := range titles {
		key := t
		if to, ok := normalized[t]; ok {
			key = to
		}
		out[key] = append(out[key], t)
	}
	return out
}

// ReadPage implements ports.DocumentStore.
func (c *Client) ReadPage(ctx context.Context, title string) (*domain.Revision, error) {
	var answer queryAnswer
	err := c.call(ctx, request{
		params: params("action", "query", "prop", "revisions", "titles", title,
			"rvprop", "ids|timestamp|user|content", "rvslots", "main"),
		idempotent: true,
	}, &answer)
	if err != nil {
		return nil, domain.NewTransportError("read "+title, err)
	}

	if len(answer.Query.Pages) == 0 {
		return nil, domain.NewTransportError("read "+title, zerr.Wrap(domain.ErrWikiRequestFailed, "no page in answer"))
	}
	page := answer.Query.Pages[0]
	if page.Missing || page.Invalid || len(page.Revisions) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrPageNotFound, "page does not exist"), "title", title)
	}

	rev := page.Revisions[0]
	return &domain.Revision{
		Title:     page.Title,
		RevID:     rev.RevID,
		Timestamp: rev.Timestamp,
		User:      rev.User,
		Content:   rev.Slots.Main.Content,
		Redirect:  page.Redirect,
	}, nil
}

// ReadTimestamps implements ports.DocumentStore.
func (c *Client) ReadTimestamps(ctx context.Context, titles []string) (map[string]time.Time, error) {
	result := make(map[string]time.Time, len(titles))
	for chunk := range slices.Chunk(titles, batchSize) {
		var answer queryAnswer
		err := c.call(ctx, request{
			params: params("action", "query", "prop", "revisions", "titles", strings.Join(chunk, "|"),
				"rvprop", "timestamp"),
			idempotent: true,
		}, &answer)
		if err != nil {
			return nil, domain.NewTransportError("read timestamps", err)
		}

		requested := answer.requested(chunk)
		for _, page := range answer.Query.Pages {
			if page.Missing || page.Invalid || len(page.Revisions) == 0 {
				continue
			}
			for _, t := range requested[page.Title] {
				result[t] = page.Revisions[0].Timestamp
			}
		}
	}
	return result, nil
}

// ReadProtections implements ports.DocumentStore. Missing pages are reported with their
// creation protections only.
func (c *Client) ReadProtections(ctx context.Context, titles []string) (map[string][]domain.Protection, error) {
	result := make(map[string][]domain.Protection, len(titles))
	for chunk := range slices.Chunk(titles, batchSize) {
		var answer queryAnswer
		err := c.call(ctx, request{
			params: params("action", "query", "prop", "info", "inprop", "protection",
				"titles", strings.Join(chunk, "|")),
			idempotent: true,
		}, &answer)
		if err != nil {
			return nil, domain.NewTransportError("read protections", err)
		}

		requested := answer.requested(chunk)
		for _, page := range answer.Query.Pages {
			if page.Invalid {
				continue
			}
			protections := make([]domain.Protection, 0, len(page.Protection))
			for _, p := range page.Protection {
				protection := domain.Protection{
					Type:  domain.ProtectionType(p.Type),
					Level: domain.ParseProtectionLevel(p.Level),
				}
				if p.Expiry != infinity {
					expiry, err := time.Parse(time.RFC3339, p.Expiry)
					if err != nil {
						return nil, domain.NewTransportError("read protections",
							zerr.With(zerr.Wrap(err, "invalid protection expiry"), "title", page.Title))
					}
					protection.Expiry = expiry
				}
				protections = append(protections, protection)
			}
			for _, t := range requested[page.Title] {
				result[t] = protections
			}
		}
	}
	return result, nil
}
