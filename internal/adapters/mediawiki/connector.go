package mediawiki

import (
	"context"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/mirror/internal/core/ports"
)

// Connector implements ports.WikiConnector.
type Connector struct {
	Options []Option
}

// NewConnector creates a connector applying opts to every client.
func NewConnector(opts ...Option) *Connector {
	return &Connector{Options: opts}
}

// Connect implements ports.WikiConnector. It logs in when a user and a password are set.
func (c *Connector) Connect(ctx context.Context, settings domain.WikiSettings) (ports.Wiki, error) {
	client, err := New(settings, c.Options...)
	if err != nil {
		return nil, err
	}
	if settings.User != "" && settings.Password != "" {
		if err := client.Login(ctx, settings.User, settings.Password); err != nil {
			return nil, err
		}
	}
	return client, nil
}
