package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"go.miragespace.co/chordring/chord"
	"go.miragespace.co/chordring/registry"
	rpcImpl "go.miragespace.co/chordring/rpc"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/timing"

	"github.com/Yiling-J/theine-go"
	"go.uber.org/zap"
)

var ErrNoNodes = errors.New("client: no nodes are registered")

const nodesKey = "nodes"

type sessionConfig struct {
	Logger   *zap.Logger
	Registry string
	Nearest  bool
	Out      io.Writer
}

// session keeps the registry connection and a short-lived copy of the node
// list across commands.
type session struct {
	sessionConfig
	dialer   *rpcImpl.Dialer
	registry *registry.Client
	nodes    *theine.LoadingCache[string, []*protocol.Node]
}

func newSession(ctx context.Context, cfg sessionConfig) (*session, error) {
	dialer := &rpcImpl.Dialer{
		Logger:   cfg.Logger,
		Attempts: timing.ClientConnectAttempts,
		Delay:    timing.ClientConnectDelay,
	}
	regRPC, err := dialer.Dial(ctx, cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("connecting to registry: %w", err)
	}

	s := &session{
		sessionConfig: cfg,
		dialer:        dialer,
		registry:      registry.NewClient(regRPC),
	}

	s.nodes, err = theine.NewBuilder[string, []*protocol.Node](16).
		BuildWithLoader(s.loadNodes)
	if err != nil {
		s.registry.Close()
		panic("BUG: " + err.Error())
	}

	return s, nil
}

func (s *session) loadNodes(ctx context.Context, _ string) (theine.Loaded[[]*protocol.Node], error) {
	nodes, err := s.registry.GetConnectedNodes(ctx)
	if err != nil {
		return theine.Loaded[[]*protocol.Node]{}, err
	}
	if len(nodes) == 0 {
		return theine.Loaded[[]*protocol.Node]{}, ErrNoNodes
	}
	s.Logger.Debug("Loaded node list from registry", zap.Int("nodes", len(nodes)))
	return theine.Loaded[[]*protocol.Node]{
		Value: nodes,
		Cost:  1,
		TTL:   timing.NodesCacheTTL,
	}, nil
}

func (s *session) connectedNodes(ctx context.Context) ([]*protocol.Node, error) {
	return s.nodes.Get(ctx, nodesKey)
}

// ownerOf returns the node responsible for key among nodes, assuming the
// ring has converged on exactly these members.
func ownerOf(nodes []*protocol.Node, key uint64) *protocol.Node {
	for _, node := range nodes {
		if node.GetId() == key {
			return node
		}
	}
	return ring.ClosestPredecessor(nodes, key)
}

func (s *session) pickNode(ctx context.Context, key []byte) (*protocol.Node, error) {
	nodes, err := s.connectedNodes(ctx)
	if err != nil {
		return nil, err
	}
	if s.Nearest {
		if owner := ownerOf(nodes, ring.Hash(key)); owner != nil {
			return owner, nil
		}
	}
	return nodes[rand.Intn(len(nodes))], nil
}

func (s *session) query(ctx context.Context, q *protocol.Query) (*protocol.QueryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timing.QueryTimeout)
	defer cancel()

	entry, err := s.pickNode(ctx, q.GetKey())
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("Sending query", zap.Object("via", entry), zap.String("op", q.GetTy().String()))

	vnode, err := chord.DialFactory(s.dialer)(ctx, entry)
	if err != nil {
		// the node may be gone; ask the registry again next time
		s.nodes.Delete(nodesKey)
		return nil, err
	}
	defer vnode.(*chord.RemoteNode).Close()

	return vnode.QueryDHT(ctx, q)
}

func (s *session) Close() error {
	s.nodes.Close()
	return s.registry.Close()
}
