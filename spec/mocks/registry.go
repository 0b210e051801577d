package mocks

import (
	"context"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/mock"
)

type Registry struct {
	mock.Mock
}

var _ ring.Registry = (*Registry)(nil)

func (r *Registry) RegisterNode(ctx context.Context, addr string) (*protocol.RegisterResponse, error) {
	args := r.Called(ctx, addr)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.(*protocol.RegisterResponse), e
}

func (r *Registry) GetConnectedNodes(ctx context.Context) ([]*protocol.Node, error) {
	args := r.Called(ctx)
	v := args.Get(0)
	e := args.Error(1)
	if v == nil {
		return nil, e
	}
	return v.([]*protocol.Node), e
}
