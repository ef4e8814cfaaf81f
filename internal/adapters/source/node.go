package source

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/licache/internal/core/ports"
)

// NodeID is the unique identifier for the source factory Graft node.
const NodeID graft.ID = "adapter.source_factory"

func init() {
	graft.Register(graft.Node[ports.SourceFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceFactory, error) {
			return NewFactory(), nil
		},
	})
}
