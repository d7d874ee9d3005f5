package progrock

import (
	"context"

	"github.com/brieflab/briefkit/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the Tracer adapter Graft node.
const NodeID graft.ID = "adapter.tracer"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return New(), nil
		},
	})
}
