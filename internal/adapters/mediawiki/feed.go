package mediawiki

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// tokenLayout is the timestamp part of a feed token.
	tokenLayout = "20060102150405"
	// feedPageLimit bounds the continuation requests of one fetch. The returned token lets the
	// next fetch resume.
	feedPageLimit = 20
)

// position is a point in the change feed, ordered by timestamp then change id.
type position struct {
	Timestamp time.Time
	ID        int64
}

func (p position) after(o position) bool {
	if !p.Timestamp.Equal(o.Timestamp) {
		return p.Timestamp.After(o.Timestamp)
	}
	return p.ID > o.ID
}

// String encodes the position as "YYYYMMDDhhmmss|rcid".
func (p position) String() string {
	return p.Timestamp.UTC().Format(tokenLayout) + "|" + strconv.FormatInt(p.ID, 10)
}

func parsePosition(token string) (position, error) {
	ts, id, ok := strings.Cut(token, "|")
	if !ok {
		return position{}, zerr.With(zerr.Wrap(domain.ErrInvalidToken, "missing separator"), "token", token)
	}
	t, err := time.Parse(tokenLayout, ts)
	if err != nil {
		return position{}, zerr.With(zerr.Wrap(domain.ErrInvalidToken, err.Error()), "token", token)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return position{}, zerr.With(zerr.Wrap(domain.ErrInvalidToken, err.Error()), "token", token)
	}
	return position{Timestamp: t, ID: n}, nil
}

type recentChange struct {
	RCID      int64     `json:"rcid"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	LogType   string    `json:"logtype"`
	LogParams struct {
		TargetTitle string `json:"target_title"`
	} `json:"logparams"`
}

func (rc recentChange) event() domain.ChangeEvent {
	e := domain.ChangeEvent{
		ID:        rc.RCID,
		Type:      domain.EventType(rc.Type),
		Title:     rc.Title,
		User:      rc.User,
		Timestamp: rc.Timestamp,
	}
	if rc.Type == "log" {
		switch rc.LogType {
		case "move":
			e.Type = domain.EventMove
			e.NewTitle = rc.LogParams.TargetTitle
		case "delete":
			e.Type = domain.EventDelete
		default:
			e.Type = domain.EventLog
		}
	}
	return e
}

type feedAnswer struct {
	Continue map[string]string `json:"continue"`
	Query    struct {
		RecentChanges []recentChange `json:"recentchanges"`
	} `json:"query"`
}

// Fetch implements ports.ChangeFeed.
func (c *Client) Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error) {
	if req.Token == "" && req.Since.IsZero() {
		head, err := c.head(ctx)
		if err != nil {
			return nil, domain.NewTransportError("read recent changes", err)
		}
		return &domain.FeedPage{NextToken: head.String()}, nil
	}

	start := position{Timestamp: req.Since}
	if req.Token != "" {
		var err error
		if start, err = parsePosition(req.Token); err != nil {
			return nil, err
		}
	}

	p := params("action", "query", "list", "recentchanges", "rcdir", "newer",
		"rcstart", start.Timestamp.UTC().Format(time.RFC3339),
		"rcprop", "ids|title|timestamp|user|loginfo", "rctype", "edit|new|log", "rclimit", "500")

	page := &domain.FeedPage{}
	last := start
	for range feedPageLimit {
		var answer feedAnswer
		if err := c.call(ctx, request{params: p, idempotent: true}, &answer); err != nil {
			return nil, domain.NewTransportError("read recent changes", err)
		}
		for _, rc := range answer.Query.RecentChanges {
			pos := position{Timestamp: rc.Timestamp, ID: rc.RCID}
			if !pos.after(start) {
				continue
			}
			page.Events = append(page.Events, rc.event())
			if pos.after(last) {
				last = pos
			}
		}
		if len(answer.Continue) == 0 {
			break
		}
		for k, v := range answer.Continue {
			p.Set(k, v)
		}
	}

	page.NextToken = last.String()
	return page, nil
}

// head returns the position of the latest change, or the current time on an empty feed.
func (c *Client) head(ctx context.Context) (position, error) {
	var answer feedAnswer
	err := c.call(ctx, request{
		params: params("action", "query", "list", "recentchanges", "rcdir", "older",
			"rcprop", "ids|timestamp", "rclimit", "1"),
		idempotent: true,
	}, &answer)
	if err != nil {
		return position{}, err
	}
	if len(answer.Query.RecentChanges) == 0 {
		return position{Timestamp: c.now().UTC().Truncate(time.Second)}, nil
	}
	rc := answer.Query.RecentChanges[0]
	return position{Timestamp: rc.Timestamp, ID: rc.RCID}, nil
}
