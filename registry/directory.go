package registry

import (
	"context"

	"go.miragespace.co/chordring/spec/protocol"
)

// Directory is the storage behind a Manager. Implementations need not be
// safe for concurrent writers; the Manager serializes Contains and Append.
type Directory interface {
	// Contains reports whether a node with the identifier is registered.
	Contains(ctx context.Context, id uint64) (bool, error)
	// Append records node at the end of the registration order.
	Append(ctx context.Context, node *protocol.Node) error
	// List returns every registered node in registration order.
	List(ctx context.Context) ([]*protocol.Node, error)
	Close() error
}
