package mediawiki

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/core/ports"
)

// NodeID is the unique identifier for the wiki connector Graft node.
const NodeID graft.ID = "adapter.wiki_connector"

func init() {
	graft.Register(graft.Node[ports.WikiConnector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WikiConnector, error) {
			return NewConnector(), nil
		},
	})
}
