package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/natdeps/internal/adapters/logger"
	"go.trai.ch/natdeps/internal/core/ports"
)

// NodeID is the unique identifier for the adapter factory Graft node.
const NodeID graft.ID = "adapter.workspace"

func init() {
	graft.Register(graft.Node[ports.AdapterFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.AdapterFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
