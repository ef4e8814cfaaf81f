package reconciler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/licache/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/licache/internal/adapters/recordstore"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/licache/internal/adapters/reporter"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/licache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/licache/internal/core/ports"
)

// NodeID is the unique identifier for the reconciler Graft node.
const NodeID graft.ID = "engine.reconciler"

func init() {
	graft.Register(graft.Node[*Reconciler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			recordstore.NodeID,
			reporter.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Reconciler, error) {
			store, err := graft.Dep[ports.RecordStore](ctx)
			if err != nil {
				return nil, err
			}

			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewReconciler(store, rep, log, tel), nil
		},
	})
}
