// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mirror/internal/adapters/config"
	_ "go.trai.ch/mirror/internal/adapters/logger"
	_ "go.trai.ch/mirror/internal/adapters/mediawiki"
	_ "go.trai.ch/mirror/internal/adapters/sqlite"
	_ "go.trai.ch/mirror/internal/adapters/state"
	_ "go.trai.ch/mirror/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/mirror/internal/app"
)
