package config

import (
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/mirror/internal/core/domain"
)

// Duration is a time.Duration read from Go duration syntax ("5m", "1h30m") extended with a
// day unit ("360d").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseDuration(raw)
	if err != nil {
		return zerr.With(err, "line", node.Line)
	}
	*d = Duration(parsed)
	return nil
}

// ParseDuration parses Go duration syntax with an optional leading number of days.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	var days time.Duration
	if before, after, found := strings.Cut(s, "d"); found {
		n, err := strconv.Atoi(before)
		if err != nil || n < 0 {
			return 0, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid duration"), "value", s)
		}
		days = time.Duration(n) * 24 * time.Hour
		s = after
		if s == "" {
			return days, nil
		}
	}
	rest, err := time.ParseDuration(s)
	if err != nil || rest < 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid duration"), "value", s)
	}
	return days + rest, nil
}
