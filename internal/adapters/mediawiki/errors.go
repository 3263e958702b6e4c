package mediawiki

import (
	"errors"
	"strconv"

	"go.trai.ch/mirror/internal/core/domain"
)

// APIError is an error answer of the MediaWiki action API, or a non-2xx HTTP status.
type APIError struct {
	// StatusCode is the HTTP status of the answer.
	StatusCode int
	// Code is the machine-readable error code, e.g. "editconflict". Empty for HTTP failures.
	Code string
	Info string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "mediawiki: HTTP " + strconv.Itoa(e.StatusCode)
	}
	return "mediawiki: " + e.Code + ": " + e.Info
}

// Unwrap lets errors.Is match domain.ErrWikiRequestFailed.
func (e *APIError) Unwrap() error { return domain.ErrWikiRequestFailed }

// retryable reports whether a later identical request may succeed.
func (e *APIError) retryable() bool {
	switch e.Code {
	case "":
		return e.StatusCode == 429 || e.StatusCode >= 500
	case "maxlag", "ratelimited", "readonly", "internal_api_error_DBQueryError":
		return true
	default:
		return false
	}
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
