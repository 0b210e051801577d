package ring

import (
	"context"

	"go.miragespace.co/chordring/spec/protocol"
)

// TransferFunc receives entries streamed during a key handoff.
type TransferFunc func(*protocol.KeyValueEntry) error

type VNode interface {
	ID() uint64
	Identity() *protocol.Node

	// AdoptSuccessor makes the receiver record caller in its next slot.
	AdoptSuccessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error)
	// AdoptPredecessor makes the receiver record caller in its prev slot.
	AdoptPredecessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error)

	QueryDHT(ctx context.Context, query *protocol.Query) (*protocol.QueryResult, error)
	ForwardQuery(ctx context.Context, query *protocol.EncodedQuery) (*protocol.QueryResult, error)

	// TransferKeys removes every entry that target now owns from the receiver
	// and hands them to fn one by one.
	TransferKeys(ctx context.Context, target uint64, fn TransferFunc) error
}

// Registry is the bootstrap service that hands out identifiers and rendezvous neighbors.
type Registry interface {
	RegisterNode(ctx context.Context, addr string) (*protocol.RegisterResponse, error)
	GetConnectedNodes(ctx context.Context) ([]*protocol.Node, error)
}
