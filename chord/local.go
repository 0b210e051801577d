package chord

import (
	"fmt"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type LocalNode struct {
	NodeConfig
	logger *zap.Logger
	state  *nodeState

	prev neighbor
	next neighbor

	localQueries     *atomic.Uint64
	forwardedQueries *atomic.Uint64
	transferredOut   *atomic.Uint64
	transferredIn    *atomic.Uint64
}

var _ ring.VNode = (*LocalNode)(nil)

func NewLocalNode(conf NodeConfig) *LocalNode {
	if err := conf.Validate(); err != nil {
		panic(fmt.Errorf("invalid NodeConfig: %w", err))
	}
	return &LocalNode{
		NodeConfig:       conf,
		logger:           conf.Logger.With(zap.String("component", "chord"), zap.Uint64("node", conf.Identity.GetId())),
		state:            newNodeState(ring.Inactive),
		localQueries:     atomic.NewUint64(0),
		forwardedQueries: atomic.NewUint64(0),
		transferredOut:   atomic.NewUint64(0),
		transferredIn:    atomic.NewUint64(0),
	}
}

func (n *LocalNode) ID() uint64 {
	return n.Identity().GetId()
}

func (n *LocalNode) Identity() *protocol.Node {
	return n.NodeConfig.Identity
}

func (n *LocalNode) State() ring.State {
	return n.state.Get()
}

// Neighbors returns copies of the identities currently held in the prev and next slots.
func (n *LocalNode) Neighbors() (prev, next *protocol.Node) {
	return identityOf(n.prev.Load()), identityOf(n.next.Load())
}

// Stop closes both neighbor connections. The node keeps its store but
// can no longer route queries to other nodes.
func (n *LocalNode) Stop() {
	if _, ok := n.state.Transition(ring.Active, ring.Stopped); !ok {
		n.state.Set(ring.Stopped)
	}
	for _, slot := range []*neighbor{&n.prev, &n.next} {
		if old := slot.Swap(nil); old != nil {
			if err := closeNode(old); err != nil {
				n.logger.Debug("Error closing neighbor", zap.Object("neighbor", identityOf(old)), zap.Error(err))
			}
		}
	}
	n.logger.Info("Node stopped")
}
