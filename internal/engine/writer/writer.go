// Package writer replaces the bot section of mirror targets.
package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
	"go.trai.ch/mirror/internal/wikitext"
)

// Printer renders localized messages.
type Printer interface {
	Sprintf(key string, args ...any) string
}

// Plan describes one write.
type Plan struct {
	Job domain.MirrorJob
	// From is the page credited in the edit summary.
	From   string
	Target *domain.Revision
	// Code is the new content of the bot section.
	Code   string
	DryRun bool
}

// Result is the outcome of a write.
type Result int

const (
	// Unchanged means the target already had the planned content.
	Unchanged Result = iota
	// Written means the target was edited, or would have been in a dry run.
	Written
)

func (r Result) String() string {
	if r == Written {
		return "written"
	}
	return "unchanged"
}

// Outcome reports what Apply did.
type Outcome struct {
	Result Result
	// Edit is the edit sent, or the one a dry run would have sent.
	Edit domain.Edit
}

// Writer writes planned copies to the document store.
type Writer struct {
	store   ports.DocumentStore
	printer Printer
}

// New creates a Writer.
func New(store ports.DocumentStore, printer Printer) *Writer {
	return &Writer{store: store, printer: printer}
}

// Apply replaces the bot section of the target with the planned code. Nothing is written when
// the result is identical to the current content. Edit conflicts are returned as
// *domain.TransportError.
func (w *Writer) Apply(ctx context.Context, plan Plan) (Outcome, error) {
	if plan.Target == nil {
		return Outcome{}, domain.NewValidationError(domain.MsgTargetMissing)
	}
	content, ok := wikitext.ReplaceBotSection(plan.Target.Content, plan.Code, wikitext.MustExist)
	if !ok {
		return Outcome{}, domain.NewValidationError(domain.MsgBotSectionNotFound, domain.Link(plan.Target.Title))
	}
	if content == plan.Target.Content {
		return Outcome{Result: Unchanged}, nil
	}

	edit := domain.Edit{
		Title:         plan.Target.Title,
		Content:       content,
		Summary:       w.Summary(plan.Job, plan.From),
		BaseRevID:     plan.Target.RevID,
		BaseTimestamp: plan.Target.Timestamp,
	}
	if plan.DryRun {
		return Outcome{Result: Written, Edit: edit}, nil
	}

	if err := w.store.EditPage(ctx, edit); err != nil {
		var transport *domain.TransportError
		if !errors.As(err, &transport) {
			err = domain.NewTransportError("edit "+edit.Title, err)
		}
		return Outcome{}, err
	}
	return Outcome{Result: Written, Edit: edit}, nil
}

// Summary returns the edit summary of a copy from the given page. A job summary containing
// a %s verb receives the link to the page.
func (w *Writer) Summary(job domain.MirrorJob, from string) string {
	link := domain.Link(from)
	switch {
	case job.Summary == "":
		return w.printer.Sprintf(domain.MsgUpdateSummary, link)
	case strings.Contains(job.Summary, "%s"):
		return fmt.Sprintf(job.Summary, link)
	default:
		return job.Summary
	}
}
