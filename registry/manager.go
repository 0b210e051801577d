package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"go.uber.org/zap"
)

type ManagerConfig struct {
	Logger    *zap.Logger
	Directory Directory
	// optional, defaults to the current time in nanoseconds
	Salt func() int64
}

func (c *ManagerConfig) Validate() error {
	if c == nil {
		return errors.New("nil ManagerConfig")
	}
	if c.Logger == nil {
		return errors.New("nil Logger")
	}
	if c.Directory == nil {
		return errors.New("nil Directory")
	}
	return nil
}

// Manager assigns identifiers to joining nodes and picks the node each one
// should join through.
type Manager struct {
	ManagerConfig
	mu sync.Mutex
}

var _ ring.Registry = (*Manager)(nil)

func NewManager(conf ManagerConfig) *Manager {
	if err := conf.Validate(); err != nil {
		panic(fmt.Errorf("invalid ManagerConfig: %w", err))
	}
	if conf.Salt == nil {
		conf.Salt = func() int64 {
			return time.Now().UnixNano()
		}
	}
	return &Manager{
		ManagerConfig: conf,
	}
}

// RegisterNode derives an identifier for addr and returns it together with
// the registered node that most closely precedes it on the ring. The
// rendezvous is nil for the first node. An identifier that is already taken
// yields ErrDuplicateNodeID; the caller may simply try again.
func (m *Manager) RegisterNode(ctx context.Context, addr string) (*protocol.RegisterResponse, error) {
	if addr == "" {
		return nil, ring.ErrEmptyAddress
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := ring.NodeID(addr, m.Salt())

	exists, err := m.Directory.Contains(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking identifier: %w", err)
	}
	if exists {
		m.Logger.Warn("Node identifier collision", zap.String("address", addr), zap.Uint64("id", id))
		return nil, ring.ErrDuplicateNodeID
	}

	nodes, err := m.Directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	rendezvous := ring.ClosestPredecessor(nodes, id)

	node := &protocol.Node{
		Id:      id,
		Address: addr,
	}
	if err := m.Directory.Append(ctx, node); err != nil {
		return nil, fmt.Errorf("recording node: %w", err)
	}

	m.Logger.Info("Node registered",
		zap.Object("node", node),
		zap.Object("rendezvous", rendezvous),
		zap.Int("nodes", len(nodes)+1),
	)

	return &protocol.RegisterResponse{
		Id:       id,
		Neighbor: rendezvous,
	}, nil
}

// GetConnectedNodes returns every node ever registered, in registration order.
func (m *Manager) GetConnectedNodes(ctx context.Context) ([]*protocol.Node, error) {
	return m.Directory.List(ctx)
}
