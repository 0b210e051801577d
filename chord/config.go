package chord

import (
	"context"
	"errors"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rtt"

	"go.uber.org/zap"
)

// RemoteNodeFactory returns a live handle to the given node. Every call must
// return a new handle, since replaced neighbors are closed individually.
type RemoteNodeFactory func(ctx context.Context, node *protocol.Node) (ring.VNode, error)

type NodeConfig struct {
	Logger   *zap.Logger
	Identity *protocol.Node
	Store    ring.Store
	Factory  RemoteNodeFactory
	// optional, records forwarding latency per neighbor
	NodesRTT rtt.HopRecorder
}

func (c *NodeConfig) Validate() error {
	if c == nil {
		return errors.New("nil NodeConfig")
	}
	if c.Logger == nil {
		return errors.New("nil Logger")
	}
	if c.Identity == nil {
		return errors.New("nil Identity")
	}
	if c.Identity.GetAddress() == "" {
		return errors.New("empty Identity address")
	}
	if c.Store == nil {
		return errors.New("nil Store")
	}
	if c.Factory == nil {
		return errors.New("nil Factory")
	}
	return nil
}
