package registry

import (
	"context"
	"sync"

	"go.miragespace.co/chordring/spec/protocol"

	"github.com/zhangyunhao116/skipset"
)

type memoryDirectory struct {
	mu    sync.RWMutex
	nodes []*protocol.Node
	ids   *skipset.Uint64Set
}

var _ Directory = (*memoryDirectory)(nil)

// NewMemoryDirectory returns a Directory that forgets every node on restart.
func NewMemoryDirectory() Directory {
	return &memoryDirectory{
		nodes: make([]*protocol.Node, 0),
		ids:   skipset.NewUint64(),
	}
}

func (m *memoryDirectory) Contains(_ context.Context, id uint64) (bool, error) {
	return m.ids.Contains(id), nil
}

func (m *memoryDirectory) Append(_ context.Context, node *protocol.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nodes = append(m.nodes, &protocol.Node{
		Id:      node.GetId(),
		Address: node.GetAddress(),
	})
	m.ids.Add(node.GetId())
	return nil
}

func (m *memoryDirectory) List(_ context.Context) ([]*protocol.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	nodes := make([]*protocol.Node, len(m.nodes))
	copy(nodes, m.nodes)
	return nodes, nil
}

func (m *memoryDirectory) Close() error {
	return nil
}
