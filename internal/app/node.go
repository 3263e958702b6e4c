package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/mirror/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/adapters/mediawiki" //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/adapters/sqlite"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/mirror/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
	// ClockNodeID is the unique identifier for the wall clock Graft node.
	ClockNodeID graft.ID = "app.clock"
)

func init() {
	graft.Register(graft.Node[clockwork.Clock]{
		ID:        ClockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (clockwork.Clock, error) {
			return clockwork.NewRealClock(), nil
		},
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			mediawiki.NodeID,
			sqlite.NodeID,
			state.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			ClockNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	connector, err := graft.Dep[ports.WikiConnector](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.ExpansionStoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	states, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	clock, err := graft.Dep[clockwork.Clock](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, connector, opener, states, log, tracer, clock), nil
}
