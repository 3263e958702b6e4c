package domain

import (
	"slices"
	"time"
)

// Config is the validated configuration of a deployment.
type Config struct {
	// Language selects the catalog of the status report and edit summaries.
	Language string
	// Location is the time zone in which the displayed day is computed.
	Location       *time.Location
	Wiki           WikiSettings
	StatePath      string
	Cache          CacheSettings
	Report         ReportSettings
	TrustedEditors []string
	Jobs           []MirrorJob
}

// WikiSettings configures the wiki API client.
type WikiSettings struct {
	APIURL     string
	User       string
	Password   string
	UserAgent  string
	RateLimit  float64
	Burst      int
	Timeout    time.Duration
	MaxRetries int
	Namespaces Namespaces
}

// CacheSettings configures the expansion cache.
type CacheSettings struct {
	// Path is the SQLite database file, or ":memory:".
	Path string
}

// ReportSettings configures the status report page.
type ReportSettings struct {
	Title string
}

// Job returns the job with the given name.
func (c *Config) Job(name string) (MirrorJob, bool) {
	for _, j := range c.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return MirrorJob{}, false
}

// IsTrusted reports whether edits by user skip the settle window.
func (c *Config) IsTrusted(user string) bool {
	return slices.Contains(c.TrustedEditors, user)
}
