package mocks

import (
	"context"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/mock"
)

type VNode struct {
	mock.Mock
}

var _ ring.VNode = (*VNode)(nil)

func (n *VNode) ID() uint64 {
	args := n.Called()
	return args.Get(0).(uint64)
}

func (n *VNode) Identity() *protocol.Node {
	args := n.Called()
	v := args.Get(0)
	if v == nil {
		return nil
	}
	return v.(*protocol.Node)
}

func (n *VNode) AdoptSuccessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	args := n.Called(ctx, caller)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.(*protocol.PreviousNeighbors), e
}

func (n *VNode) AdoptPredecessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	args := n.Called(ctx, caller)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.(*protocol.PreviousNeighbors), e
}

func (n *VNode) QueryDHT(ctx context.Context, query *protocol.Query) (*protocol.QueryResult, error) {
	args := n.Called(ctx, query)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.(*protocol.QueryResult), e
}

func (n *VNode) ForwardQuery(ctx context.Context, query *protocol.EncodedQuery) (*protocol.QueryResult, error) {
	args := n.Called(ctx, query)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.(*protocol.QueryResult), e
}

func (n *VNode) TransferKeys(ctx context.Context, target uint64, fn ring.TransferFunc) error {
	args := n.Called(ctx, target, fn)
	return args.Error(0)
}

func (n *VNode) Close() error {
	args := n.Called()
	return args.Error(0)
}
