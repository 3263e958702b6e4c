package sqlite

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mirror/internal/core/ports"
)

// NodeID is the unique identifier for the expansion store opener Graft node.
const NodeID graft.ID = "adapter.expansion_store"

func init() {
	graft.Register(graft.Node[ports.ExpansionStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExpansionStoreOpener, error) {
			return Opener{}, nil
		},
	})
}
