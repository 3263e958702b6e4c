package domain

import (
	"fmt"
	"strings"
	"time"
)

// Message is a displayable message. Key is an English format string that doubles as the
// lookup key of the translation catalogs; Args are applied to it.
type Message struct {
	Key  string
	Args []any
}

// NewMessage builds a Message.
func NewMessage(key string, args ...any) Message {
	return Message{Key: key, Args: args}
}

// String renders the message in English.
func (m Message) String() string {
	if len(m.Args) == 0 {
		return m.Key
	}
	return fmt.Sprintf(m.Key, m.Args...)
}

// Reportable is implemented by errors that are surfaced in the status report.
type Reportable interface {
	error
	Messages() []Message
}

// ValidationError reports a structural problem with a source, a target or a selection.
// It is never retried automatically.
type ValidationError struct {
	Message Message
}

// NewValidationError creates a ValidationError from a message key and its arguments.
func NewValidationError(key string, args ...any) *ValidationError {
	return &ValidationError{Message: NewMessage(key, args...)}
}

func (e *ValidationError) Error() string { return e.Message.String() }

// Messages implements Reportable.
func (e *ValidationError) Messages() []Message { return []Message{e.Message} }

// SelectionError reports that the source of a job could not be read from its index page.
type SelectionError struct {
	Index   string
	Message Message
}

// NewSelectionError creates a SelectionError for the index page.
func NewSelectionError(index, key string, args ...any) *SelectionError {
	return &SelectionError{Index: index, Message: NewMessage(key, args...)}
}

func (e *SelectionError) Error() string { return e.Message.String() }

// Messages implements Reportable.
func (e *SelectionError) Messages() []Message { return []Message{e.Message} }

// FreshnessError reports a dependency of the source that changed too recently to be trusted.
type FreshnessError struct {
	Template  string
	Source    string
	ChangedAt time.Time
}

func (e *FreshnessError) Error() string { return e.message().String() }

// Messages implements Reportable.
func (e *FreshnessError) Messages() []Message { return []Message{e.message()} }

func (e *FreshnessError) message() Message {
	return NewMessage(MsgRecentTemplate, Link(e.Template), Link(e.Source))
}

// ViolationKind classifies a stylesheet protection problem.
type ViolationKind int

const (
	// ViolationUnprotected means the stylesheet has no edit protection.
	ViolationUnprotected ViolationKind = iota
	// ViolationInsufficientLevel means the edit protection is below the required tier.
	ViolationInsufficientLevel
	// ViolationExpiringSoon means the edit protection expires within the safety margin.
	ViolationExpiringSoon
	// ViolationUnverifiable means the store did not return protection data for the stylesheet.
	ViolationUnverifiable
)

// String returns a short identifier used in logs and span attributes.
func (k ViolationKind) String() string {
	switch k {
	case ViolationUnprotected:
		return "unprotected"
	case ViolationInsufficientLevel:
		return "insufficiently protected"
	case ViolationExpiringSoon:
		return "expiring soon"
	case ViolationUnverifiable:
		return "unverifiable"
	default:
		return "unknown"
	}
}

// PolicyViolation is one stylesheet failing the protection policy.
type PolicyViolation struct {
	Kind  ViolationKind
	Title string
}

// Message returns the displayable message for the violation.
func (v PolicyViolation) Message() Message {
	switch v.Kind {
	case ViolationUnprotected:
		return NewMessage(MsgStylesheetUnprotected, Link(v.Title))
	case ViolationInsufficientLevel:
		return NewMessage(MsgStylesheetInsufficient, Link(v.Title))
	case ViolationExpiringSoon:
		return NewMessage(MsgStylesheetExpiring, Link(v.Title), ProtectionSafetyMarginDays)
	default:
		return NewMessage(MsgStylesheetUnverifiable, Link(v.Title))
	}
}

// PolicyError aggregates the stylesheet protection violations of an expansion.
// Fixing it requires changing the protection of the listed pages.
type PolicyError struct {
	Violations []PolicyViolation
}

func (e *PolicyError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Message().String()
	}
	return strings.Join(parts, ", ")
}

// Messages implements Reportable.
func (e *PolicyError) Messages() []Message {
	msgs := make([]Message, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message()
	}
	return msgs
}

// Has reports whether the error contains a violation of the given kind.
func (e *PolicyError) Has(kind ViolationKind) bool {
	for _, v := range e.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// TransportError wraps a failed collaborator call. The attempt is retried verbatim on the next
// invocation and the error never reaches the status report.
type TransportError struct {
	Op  string
	Err error
}

// NewTransportError wraps err, returning nil when err is nil.
func NewTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Link formats a wiki link to title.
func Link(title string) string {
	return "[[" + title + "]]"
}
