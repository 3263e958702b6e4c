package ports

import "go.trai.ch/mirror/internal/core/domain"

// ConfigLoader defines the interface for loading the deployment configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads and validates the configuration file at path.
	Load(path string) (*domain.Config, error)
}
