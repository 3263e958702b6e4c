package mediawiki

import (
	"context"
	"slices"
	"strconv"

	"go.trai.ch/mirror/internal/core/domain"
)

// Expand implements ports.TemplateExpander.
func (c *Client) Expand(ctx context.Context, code, title string, revID int64) (string, error) {
	var answer struct {
		ExpandTemplates struct {
			Wikitext string `json:"wikitext"`
		} `json:"expandtemplates"`
	}
	p := params("action", "expandtemplates", "title", title, "text", code, "prop", "wikitext")
	if revID > 0 {
		p.Set("revid", strconv.FormatInt(revID, 10))
	}
	if err := c.call(ctx, request{params: p, post: true, idempotent: true}, &answer); err != nil {
		return "", domain.NewTransportError("expand "+title, err)
	}
	return answer.ExpandTemplates.Wikitext, nil
}

// ListDirectTemplates implements ports.TemplateExpander.
func (c *Client) ListDirectTemplates(ctx context.Context, code, title string, revID int64) ([]string, error) {
	var answer struct {
		Parse struct {
			Templates []struct {
				Title string `json:"title"`
			} `json:"templates"`
		} `json:"parse"`
	}
	p := params("action", "parse", "title", title, "text", code, "prop", "templates",
		"contentmodel", "wikitext")
	if revID > 0 {
		p.Set("revid", strconv.FormatInt(revID, 10))
	}
	if err := c.call(ctx, request{params: p, post: true, idempotent: true}, &answer); err != nil {
		return nil, domain.NewTransportError("list templates of "+title, err)
	}

	templates := make([]string, 0, len(answer.Parse.Templates))
	for _, t := range answer.Parse.Templates {
		if !slices.Contains(templates, t.Title) {
			templates = append(templates, t.Title)
		}
	}
	return templates, nil
}
