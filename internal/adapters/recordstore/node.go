package recordstore

import (
	"context"

	"github.com/grindlemire/graft"
	walkfs "go.trai.ch/licache/internal/adapters/fs"
	"go.trai.ch/licache/internal/core/ports"
)

// NodeID is the unique identifier for the record store Graft node.
const NodeID graft.ID = "adapter.record_store"

func init() {
	graft.Register(graft.Node[ports.RecordStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{walkfs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.RecordStore, error) {
			walker, err := graft.Dep[*walkfs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(walker), nil
		},
	})
}
