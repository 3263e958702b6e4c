// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat is the rendering of log records.
type LogFormat int

const (
	// FormatPretty renders colored, human-readable lines.
	FormatPretty LogFormat = iota
	// FormatJSON renders one JSON object per record.
	FormatJSON
)

// Environment describes where the process runs.
type Environment struct {
	// TTY is true when stderr is a terminal.
	TTY bool
	// CI is true when the CI variable is set to "true" or "1".
	CI bool
}

// DetectEnvironment inspects stderr and the CI environment variable.
func DetectEnvironment() Environment {
	ci := os.Getenv("CI")
	return Environment{
		TTY: term.IsTerminal(int(os.Stderr.Fd())),
		CI:  ci == "true" || ci == "1",
	}
}

// ResolveFormat applies the user flag to the detected environment.
// userFlag should be one of: "auto", "pretty", "json", or empty.
// Scheduled runs without a terminal log JSON; terminals and CI logs get pretty output.
func ResolveFormat(env Environment, userFlag string) LogFormat {
	switch userFlag {
	case "pretty", "text":
		return FormatPretty
	case "json":
		return FormatJSON
	}
	if !env.TTY && !env.CI {
		return FormatJSON
	}
	return FormatPretty
}
