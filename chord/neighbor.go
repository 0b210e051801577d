package chord

import (
	"io"
	"sync"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
)

// neighbor is a single independently locked slot. Callers copy the handle out
// and release the lock before talking to the network.
type neighbor struct {
	mu   sync.RWMutex
	node ring.VNode
}

func (s *neighbor) Load() ring.VNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node
}

func (s *neighbor) Swap(node ring.VNode) (old ring.VNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, s.node = s.node, node
	return
}

// identityOf copies the id and address of a handle, or returns nil for an empty slot.
func identityOf(node ring.VNode) *protocol.Node {
	if node == nil {
		return nil
	}
	return &protocol.Node{
		Id:      node.ID(),
		Address: node.Identity().GetAddress(),
	}
}

func closeNode(node ring.VNode) error {
	if c, ok := node.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
