package domain

import "go.trai.ch/zerr"

var (
	// ErrPageNotFound is returned by the document store when a page does not exist.
	ErrPageNotFound = zerr.New("page not found")

	// ErrEditConflict is returned by the document store when the page changed after it was read.
	ErrEditConflict = zerr.New("edit conflict")

	// ErrInvalidToken is returned when a change feed continuation token cannot be parsed.
	ErrInvalidToken = zerr.New("invalid continuation token")

	// ErrNoJobsConfigured is returned when the configuration declares no mirror jobs.
	ErrNoJobsConfigured = zerr.New("no mirror jobs configured")

	// ErrUnknownJob is returned when a job requested on the command line is not configured.
	ErrUnknownJob = zerr.New("unknown job")

	// ErrDuplicateJob is returned when two jobs share the same name or target.
	ErrDuplicateJob = zerr.New("duplicate job")

	// ErrInvalidJob is returned when a job definition is incomplete or inconsistent.
	ErrInvalidJob = zerr.New("invalid job")

	// ErrInvalidSelector is returned when a content selector definition is invalid.
	ErrInvalidSelector = zerr.New("invalid content selector")

	// ErrUnsupportedLanguage is returned when the configured report language has no catalog.
	ErrUnsupportedLanguage = zerr.New("unsupported language")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is out of range or malformed.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrStateReadFailed is returned when the state file cannot be read.
	ErrStateReadFailed = zerr.New("failed to read state file")

	// ErrStateUnmarshalFailed is returned when the state file cannot be decoded.
	ErrStateUnmarshalFailed = zerr.New("failed to unmarshal state file")

	// ErrStateWriteFailed is returned when the state file cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write state file")

	// ErrCacheOpenFailed is returned when the expansion cache database cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open expansion cache")

	// ErrCacheReadFailed is returned when an expansion cache lookup fails.
	ErrCacheReadFailed = zerr.New("failed to read expansion cache")

	// ErrCacheWriteFailed is returned when an expansion cache insert fails.
	ErrCacheWriteFailed = zerr.New("failed to write expansion cache")

	// ErrWikiRequestFailed is returned when a request to the wiki API fails.
	ErrWikiRequestFailed = zerr.New("wiki request failed")

	// ErrWikiLoginFailed is returned when the bot cannot log in.
	ErrWikiLoginFailed = zerr.New("wiki login failed")

	// ErrRunIncomplete is returned when at least one job hit a transport error and must be retried.
	ErrRunIncomplete = zerr.New("run incomplete, some jobs will be retried on the next invocation")

	// ErrNoCacheEntries is returned when the expansion cache holds nothing for a title.
	ErrNoCacheEntries = zerr.New("no cache entries")
)
