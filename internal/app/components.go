package app

import "go.trai.ch/mirror/internal/core/ports"

// Components is the set of services main needs to run a command.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components instance.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{App: app, Logger: logger}
}
