package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.trai.ch/mirror/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
		want    bool
	}{
		{name: "CI=true", ciValue: "true", want: true},
		{name: "CI=1", ciValue: "1", want: true},
		{name: "CI=false", ciValue: "false", want: false},
		{name: "no CI", ciValue: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, tt.want, detector.DetectEnvironment().CI)
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tty := detector.Environment{TTY: true}
	cron := detector.Environment{}
	ci := detector.Environment{CI: true}

	tests := []struct {
		name string
		env  detector.Environment
		flag string
		want detector.LogFormat
	}{
		{name: "auto on terminal", env: tty, flag: "auto", want: detector.FormatPretty},
		{name: "empty on terminal", env: tty, flag: "", want: detector.FormatPretty},
		{name: "auto without terminal", env: cron, flag: "auto", want: detector.FormatJSON},
		{name: "auto in CI", env: ci, flag: "", want: detector.FormatPretty},
		{name: "forced json", env: tty, flag: "json", want: detector.FormatJSON},
		{name: "forced pretty", env: cron, flag: "pretty", want: detector.FormatPretty},
		{name: "unknown falls back", env: cron, flag: "fancy", want: detector.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveFormat(tt.env, tt.flag))
		})
	}
}
