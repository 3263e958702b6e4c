package config

// Mirrorfile represents the structure of the mirror.yaml configuration file.
type Mirrorfile struct {
	Version        string      `yaml:"version"`
	Language       string      `yaml:"language"`
	Timezone       string      `yaml:"timezone"`
	Wiki           WikiDTO     `yaml:"wiki"`
	State          string      `yaml:"state"`
	Cache          CacheDTO    `yaml:"cache"`
	Report         ReportDTO   `yaml:"report"`
	TrustedEditors []string    `yaml:"trustedEditors"`
	Defaults       DefaultsDTO `yaml:"defaults"`
	Jobs           []JobDTO    `yaml:"jobs"`
}

// WikiDTO configures the wiki API client.
type WikiDTO struct {
	API         string   `yaml:"api"`
	User        string   `yaml:"user"`
	PasswordEnv string   `yaml:"passwordEnv"`
	UserAgent   string   `yaml:"userAgent"`
	RateLimit   float64  `yaml:"rateLimit"`
	Burst       int      `yaml:"burst"`
	Timeout     Duration `yaml:"timeout"`
	MaxRetries  *int     `yaml:"maxRetries"`
	// TemplateNamespace is the local name of the template namespace.
	TemplateNamespace string `yaml:"templateNamespace"`
	// Namespaces lists the other namespace prefixes used to tell main-namespace titles apart.
	Namespaces []string `yaml:"namespaces"`
}

// CacheDTO configures the expansion cache.
type CacheDTO struct {
	Path string   `yaml:"path"`
	TTL  Duration `yaml:"ttl"`
}

// ReportDTO configures the status report page.
type ReportDTO struct {
	Title string `yaml:"title"`
}

// DefaultsDTO holds values applied to jobs that do not set them.
type DefaultsDTO struct {
	QuietPeriod           Duration `yaml:"quietPeriod"`
	DependencyQuietPeriod Duration `yaml:"dependencyQuietPeriod"`
	MaxSourceLength       int      `yaml:"maxSourceLength"`
}

// JobDTO represents a mirror job definition in the configuration.
type JobDTO struct {
	Name                  string       `yaml:"name"`
	Source                string       `yaml:"source"`
	Target                string       `yaml:"target"`
	Upstream              []string     `yaml:"upstream"`
	Selector              *SelectorDTO `yaml:"selector"`
	QuietPeriod           Duration     `yaml:"quietPeriod"`
	DependencyQuietPeriod Duration     `yaml:"dependencyQuietPeriod"`
	MaxSourceLength       *int         `yaml:"maxSourceLength"`
	CacheTTL              Duration     `yaml:"cacheTTL"`
	Summary               string       `yaml:"summary"`
}

// SelectorDTO represents a content selector.
type SelectorDTO struct {
	Kind         string `yaml:"kind"`
	Title        string `yaml:"title"`
	PrecacheDays int    `yaml:"precacheDays"`
	Index        string `yaml:"index"`
	Template     string `yaml:"template"`
	Param        string `yaml:"param"`
	SourcePrefix string `yaml:"sourcePrefix"`
	Optional     bool   `yaml:"optional"`
	Placeholder  string `yaml:"placeholder"`
	Precache     bool   `yaml:"precache"`
}
