package mediawiki

import (
	"context"
	"strconv"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// EditPage implements ports.DocumentStore. Missing pages are created only when edit.Create is
// set.
func (c *Client) EditPage(ctx context.Context, edit domain.Edit) error {
	err := c.edit(ctx, edit)
	if hasCode(err, "badtoken") {
		c.resetCSRF()
		err = c.edit(ctx, edit)
	}

	switch {
	case err == nil:
		return nil
	case hasCode(err, "editconflict"):
		return domain.NewTransportError("edit "+edit.Title,
			zerr.With(zerr.Wrap(domain.ErrEditConflict, err.Error()), "title", edit.Title))
	case hasCode(err, "missingtitle"):
		return zerr.With(zerr.Wrap(domain.ErrPageNotFound, err.Error()), "title", edit.Title)
	default:
		return domain.NewTransportError("edit "+edit.Title, err)
	}
}

func (c *Client) edit(ctx context.Context, edit domain.Edit) error {
	token, err := c.csrf(ctx)
	if err != nil {
		return err
	}

	p := params("action", "edit", "title", edit.Title, "text", edit.Content, "summary", edit.Summary,
		"bot", "1", "token", token)
	if !edit.Create {
		p.Set("nocreate", "1")
	}
	if edit.BaseRevID > 0 {
		p.Set("baserevid", strconv.FormatInt(edit.BaseRevID, 10))
	}
	if !edit.BaseTimestamp.IsZero() {
		p.Set("basetimestamp", edit.BaseTimestamp.UTC().Format(time.RFC3339))
	}

	var answer struct {
		Edit struct {
			Result string `json:"result"`
		} `json:"edit"`
	}
	if err := c.call(ctx, request{params: p, post: true}, &answer); err != nil {
		return err
	}
	if answer.Edit.Result != "Success" {
		return zerr.With(zerr.Wrap(domain.ErrWikiRequestFailed, "edit was not saved"), "result", answer.Edit.Result)
	}
	return nil
}
