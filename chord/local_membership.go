package chord

import (
	"context"
	"fmt"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"go.uber.org/zap"
)

func (n *LocalNode) AdoptSuccessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	return n.adopt(ctx, protocol.NeighborType_NEXT, caller)
}

func (n *LocalNode) AdoptPredecessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	return n.adopt(ctx, protocol.NeighborType_PREVIOUS, caller)
}

func (n *LocalNode) slot(ty protocol.NeighborType) (*neighbor, error) {
	switch ty {
	case protocol.NeighborType_NEXT:
		return &n.next, nil
	case protocol.NeighborType_PREVIOUS:
		return &n.prev, nil
	default:
		return nil, ring.ErrUnknownNeighbor
	}
}

// adopt is the only place where a remote request changes a neighbor slot.
// The snapshot is taken before the slot changes, and the connection to the
// caller is made without holding any lock.
func (n *LocalNode) adopt(ctx context.Context, ty protocol.NeighborType, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	if caller == nil {
		return nil, ring.ErrNodeNil
	}
	slot, err := n.slot(ty)
	if err != nil {
		return nil, err
	}

	prev, next := n.Neighbors()
	snapshot := &protocol.PreviousNeighbors{
		Prev: prev,
		Next: next,
	}

	vnode, err := n.Factory(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", caller.GetAddress(), err)
	}

	n.replaceNeighbor(ty, slot, vnode)

	return snapshot, nil
}

func (n *LocalNode) replaceNeighbor(ty protocol.NeighborType, slot *neighbor, vnode ring.VNode) {
	old := slot.Swap(vnode)

	n.logger.Info("Replaced neighbor",
		zap.String("slot", ty.String()),
		zap.Object("old", identityOf(old)),
		zap.Object("new", identityOf(vnode)),
	)

	if old != nil {
		if n.NodesRTT != nil && !n.holds(old.ID()) {
			n.NodesRTT.Forget(old.ID())
		}
		if err := closeNode(old); err != nil {
			n.logger.Debug("Error closing replaced neighbor", zap.Object("neighbor", identityOf(old)), zap.Error(err))
		}
	}
}

// holds reports whether either neighbor slot currently points at id.
func (n *LocalNode) holds(id uint64) bool {
	for _, slot := range []*neighbor{&n.prev, &n.next} {
		if node := slot.Load(); node != nil && node.ID() == id {
			return true
		}
	}
	return false
}

// Create makes the node the sole member of a new ring, owning every key.
func (n *LocalNode) Create() error {
	if _, ok := n.state.Transition(ring.Inactive, ring.Active); !ok {
		return fmt.Errorf("%w: %s", ring.ErrInvalidState, n.state.Get())
	}
	n.logger.Info("Creating new ring")
	return nil
}

// Join splices the node into the ring after rendezvous, the node that
// precedes it, and pulls the keys it now owns. With a nil rendezvous the node
// creates a new ring instead.
func (n *LocalNode) Join(ctx context.Context, rendezvous *protocol.Node) (err error) {
	if rendezvous == nil {
		return n.Create()
	}
	if rendezvous.GetId() == n.ID() {
		return fmt.Errorf("%w: rendezvous is the node itself", ring.ErrDegenerateNeighbor)
	}
	if _, ok := n.state.Transition(ring.Inactive, ring.Joining); !ok {
		return fmt.Errorf("%w: %s", ring.ErrInvalidState, n.state.Get())
	}
	defer func() {
		if err != nil {
			n.state.Set(ring.Inactive)
		}
	}()

	n.logger.Info("Joining ring", zap.Object("via", rendezvous))

	// the rendezvous node adopts us as its successor and becomes our predecessor
	pre, err := n.Factory(ctx, rendezvous)
	if err != nil {
		return fmt.Errorf("%w: connecting to rendezvous: %w", ring.ErrJoinHandshake, err)
	}
	snapshot, err := pre.AdoptSuccessor(ctx, n.Identity())
	if err != nil {
		closeNode(pre)
		return fmt.Errorf("%w: registering as successor of %s: %w", ring.ErrJoinHandshake, rendezvous.GetAddress(), err)
	}
	n.replaceNeighbor(protocol.NeighborType_PREVIOUS, &n.prev, pre)

	// its old successor adopts us as its predecessor and becomes our successor
	succNode := snapshot.GetNext()
	if succNode == nil {
		succNode = rendezvous
	}
	succ, err := n.Factory(ctx, succNode)
	if err != nil {
		return fmt.Errorf("%w: connecting to successor: %w", ring.ErrJoinHandshake, err)
	}
	if _, err := succ.AdoptPredecessor(ctx, n.Identity()); err != nil {
		closeNode(succ)
		return fmt.Errorf("%w: registering as predecessor of %s: %w", ring.ErrJoinHandshake, succNode.GetAddress(), err)
	}
	n.replaceNeighbor(protocol.NeighborType_NEXT, &n.next, succ)

	if err := n.pullKeys(ctx, pre); err != nil {
		return err
	}

	if _, ok := n.state.Transition(ring.Joining, ring.Active); !ok {
		return fmt.Errorf("%w: %s", ring.ErrInvalidState, n.state.Get())
	}

	n.logger.Info("Joined ring",
		zap.Object("predecessor", identityOf(pre)),
		zap.Object("successor", succNode),
		zap.Int("keys", n.Store.Len()),
	)

	return nil
}

func (n *LocalNode) pullKeys(ctx context.Context, pre ring.VNode) error {
	var received uint64
	err := pre.TransferKeys(ctx, n.ID(), func(entry *protocol.KeyValueEntry) error {
		n.Store.Set(entry.GetKey(), entry.GetValue())
		received++
		return nil
	})
	n.transferredIn.Add(received)
	if err != nil {
		return fmt.Errorf("%w after %d keys: %w", ring.ErrJoinTransfer, received, err)
	}
	n.logger.Debug("Pulled keys from predecessor", zap.Object("predecessor", identityOf(pre)), zap.Uint64("keys", received))
	return nil
}
