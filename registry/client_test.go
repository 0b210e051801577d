package registry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	rpcImpl "go.miragespace.co/chordring/rpc"
	"go.miragespace.co/chordring/spec/mocks"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func pipeClient(t *testing.T, reg ring.Registry) *Client {
	t.Helper()
	as := require.New(t)

	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	c1, c2 := net.Pipe()

	ctx, cancel := context.WithCancel(context.Background())

	srv := &rpcImpl.Server{
		Logger: logger,
		Handler: (&Server{
			Logger:   logger,
			Registry: reg,
		}).Handler(),
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.HandleConn(ctx, c2)
	}()

	rpcClient, err := rpcImpl.NewClient(logger, c1)
	as.NoError(err)

	client := NewClient(rpcClient)
	t.Cleanup(func() {
		client.Close()
		cancel()
		<-done
	})

	return client
}

func TestClientOverRPC(t *testing.T) {
	as := require.New(t)

	m := newTestManager(t, NewMemoryDirectory(), func() int64 { return 1 })
	client := pipeClient(t, m)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	nodes, err := client.GetConnectedNodes(ctx)
	as.NoError(err)
	as.Len(nodes, 0)

	first, err := client.RegisterNode(ctx, "127.0.0.1:9000")
	as.NoError(err)
	as.Nil(first.GetNeighbor())

	second, err := client.RegisterNode(ctx, "127.0.0.1:9001")
	as.NoError(err)
	as.Equal(first.GetId(), second.GetNeighbor().GetId())
	as.Equal("127.0.0.1:9000", second.GetNeighbor().GetAddress())

	_, err = client.RegisterNode(ctx, "127.0.0.1:9000")
	as.ErrorIs(err, ring.ErrDuplicateNodeID)

	_, err = client.RegisterNode(ctx, "")
	as.ErrorIs(err, ring.ErrEmptyAddress)

	nodes, err = client.GetConnectedNodes(ctx)
	as.NoError(err)
	as.Len(nodes, 2)
	as.Equal(first.GetId(), nodes[0].GetId())
	as.Equal(second.GetId(), nodes[1].GetId())
}

func TestRegisterRetriesCollision(t *testing.T) {
	as := require.New(t)
	logger := zaptest.NewLogger(t)

	reg := new(mocks.Registry)
	reg.On("RegisterNode", mock.Anything, "addr").Return(nil, ring.ErrDuplicateNodeID).Once()
	reg.On("RegisterNode", mock.Anything, "addr").Return(&protocol.RegisterResponse{Id: 5}, nil).Once()

	resp, err := Register(context.Background(), logger, reg, "addr")
	as.NoError(err)
	as.Equal(uint64(5), resp.GetId())

	reg.AssertExpectations(t)
}

func TestRegisterGivesUp(t *testing.T) {
	as := require.New(t)
	logger := zaptest.NewLogger(t)

	reg := new(mocks.Registry)
	reg.On("RegisterNode", mock.Anything, "addr").Return(nil, ring.ErrDuplicateNodeID)

	_, err := Register(context.Background(), logger, reg, "addr")
	as.ErrorIs(err, ring.ErrDuplicateNodeID)
	reg.AssertNumberOfCalls(t, "RegisterNode", 3)

	other := new(mocks.Registry)
	other.On("RegisterNode", mock.Anything, "addr").Return(nil, errors.New("boom")).Once()

	_, err = Register(context.Background(), logger, other, "addr")
	as.ErrorContains(err, "boom")
	other.AssertExpectations(t)
}
