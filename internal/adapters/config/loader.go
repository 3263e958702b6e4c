// Package config provides the configuration loader for mirror.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve in minimal containers

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

const (
	// SupportedVersion is the configuration schema version understood by the loader.
	SupportedVersion = "1"

	// DefaultLanguage is the report language used when none is configured.
	DefaultLanguage = "fr"

	// DefaultReportTitle is the status report page used when none is configured.
	DefaultReportTitle = "Utilisateur:MirrorBot/Erreurs"

	defaultUserAgent  = "mirror (https://go.trai.ch/mirror)"
	defaultRateLimit  = 5
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Getenv resolves the password environment variable. It defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load reads the configuration file at path and returns the validated configuration.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file Mirrorfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	switch file.Version {
	case "":
		l.Logger.Warn("mirror.yaml has no version, assuming " + SupportedVersion)
	case SupportedVersion:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported config version"),
			"version", file.Version)
	}

	cfg, err := l.build(&file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) build(file *Mirrorfile, dir string) (*domain.Config, error) {
	location := time.UTC
	if file.Timezone != "" {
		loc, err := time.LoadLocation(file.Timezone)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown timezone"),
				"timezone", file.Timezone)
		}
		location = loc
	}

	wiki, err := l.buildWiki(&file.Wiki)
	if err != nil {
		return nil, err
	}

	jobs, err := buildJobs(file)
	if err != nil {
		return nil, err
	}

	language := file.Language
	if language == "" {
		language = DefaultLanguage
	}
	reportTitle := file.Report.Title
	if reportTitle == "" {
		reportTitle = DefaultReportTitle
	}

	return &domain.Config{
		Language:       language,
		Location:       location,
		Wiki:           wiki,
		StatePath:      resolvePath(dir, file.State, domain.DefaultStatePath()),
		Cache:          domain.CacheSettings{Path: resolvePath(dir, file.Cache.Path, domain.DefaultCachePath())},
		Report:         domain.ReportSettings{Title: reportTitle},
		TrustedEditors: file.TrustedEditors,
		Jobs:           jobs,
	}, nil
}

func (l *Loader) buildWiki(dto *WikiDTO) (domain.WikiSettings, error) {
	if dto.API == "" {
		return domain.WikiSettings{}, zerr.Wrap(domain.ErrInvalidConfig, "wiki.api is required")
	}
	if dto.RateLimit < 0 || dto.Burst < 0 {
		return domain.WikiSettings{}, zerr.Wrap(domain.ErrInvalidConfig, "wiki rate limit must not be negative")
	}

	settings := domain.WikiSettings{
		APIURL:     dto.API,
		User:       dto.User,
		UserAgent:  dto.UserAgent,
		RateLimit:  dto.RateLimit,
		Burst:      dto.Burst,
		Timeout:    time.Duration(dto.Timeout),
		MaxRetries: defaultMaxRetries,
		Namespaces: domain.Namespaces{Template: dto.TemplateNamespace, Names: dto.Namespaces},
	}
	if dto.MaxRetries != nil {
		settings.MaxRetries = *dto.MaxRetries
	}
	if settings.UserAgent == "" {
		settings.UserAgent = defaultUserAgent
	}
	if settings.RateLimit == 0 {
		settings.RateLimit = defaultRateLimit
	}
	if settings.Burst == 0 {
		settings.Burst = 1
	}
	if settings.Timeout == 0 {
		settings.Timeout = defaultTimeout
	}
	if settings.Namespaces.Template == "" {
		settings.Namespaces.Template = domain.DefaultTemplateNamespace
	}

	if dto.PasswordEnv != "" {
		settings.Password = l.Getenv(dto.PasswordEnv)
		if settings.Password == "" {
			l.Logger.Warn("environment variable " + dto.PasswordEnv + " is empty, running without login")
		}
	}
	return settings, nil
}

func buildJobs(file *Mirrorfile) ([]domain.MirrorJob, error) {
	if len(file.Jobs) == 0 {
		return nil, zerr.Wrap(domain.ErrNoJobsConfigured, "jobs is empty")
	}

	names := make(map[string]bool, len(file.Jobs))
	targets := make(map[string]string, len(file.Jobs))
	jobs := make([]domain.MirrorJob, 0, len(file.Jobs))

	for i := range file.Jobs {
		job := buildJob(&file.Jobs[i], &file.Defaults, time.Duration(file.Cache.TTL))
		if names[job.Name] {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateJob, "job name is used twice"), "job", job.Name)
		}
		if other, ok := targets[job.Target]; ok {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrDuplicateJob, "target is mirrored twice"),
				"job", job.Name), "other", other)
		}
		if err := job.Validate(); err != nil {
			return nil, err
		}
		names[job.Name] = true
		targets[job.Target] = job.Name
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func buildJob(dto *JobDTO, defaults *DefaultsDTO, cacheTTL time.Duration) domain.MirrorJob {
	job := domain.MirrorJob{
		Name:                  strings.TrimSpace(dto.Name),
		Source:                dto.Source,
		Target:                dto.Target,
		Upstream:              dto.Upstream,
		QuietPeriod:           firstPositive(time.Duration(dto.QuietPeriod), time.Duration(defaults.QuietPeriod)),
		DependencyQuietPeriod: firstPositive(time.Duration(dto.DependencyQuietPeriod), time.Duration(defaults.DependencyQuietPeriod)),
		MaxSourceLength:       defaults.MaxSourceLength,
		CacheTTL:              firstPositive(time.Duration(dto.CacheTTL), cacheTTL),
		Summary:               dto.Summary,
	}
	if dto.MaxSourceLength != nil {
		job.MaxSourceLength = *dto.MaxSourceLength
	}
	if job.Name == "" {
		job.Name = job.Target
	}
	if s := dto.Selector; s != nil {
		job.Selector = domain.ContentSelector{
			Kind:         domain.SelectorKind(s.Kind),
			TitlePattern: s.Title,
			PrecacheDays: s.PrecacheDays,
			IndexPattern: s.Index,
			Template:     s.Template,
			ParamPattern: s.Param,
			SourcePrefix: s.SourcePrefix,
			Optional:     s.Optional,
			Placeholder:  s.Placeholder,
			Precache:     s.Precache,
		}
	}
	return job.WithDefaults()
}

func firstPositive(values ...time.Duration) time.Duration {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// resolvePath makes a relative path relative to the directory of the config file.
func resolvePath(dir, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if path == domain.MemoryPath || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
