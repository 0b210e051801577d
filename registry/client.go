package registry

import (
	"context"
	"errors"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rpc"
	"go.miragespace.co/chordring/timing"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

var ErrMalformedResponse = errors.New("registry: malformed response")

// Client talks to a remote registry.
type Client struct {
	rpc rpc.RPC
}

var _ ring.Registry = (*Client)(nil)

func NewClient(r rpc.RPC) *Client {
	return &Client{
		rpc: r,
	}
}

func (c *Client) RegisterNode(ctx context.Context, addr string) (*protocol.RegisterResponse, error) {
	resp, err := c.rpc.Call(ctx, &protocol.RPC_Request{
		Kind: protocol.RPC_REGISTER_NODE,
		RegisterNodeInfo: &protocol.RegisterRequest{
			Address: addr,
		},
	})
	if err != nil {
		return nil, ring.ErrorMapper(err)
	}
	if resp.GetRegisterNodeInfo() == nil {
		return nil, ErrMalformedResponse
	}
	return resp.GetRegisterNodeInfo(), nil
}

func (c *Client) GetConnectedNodes(ctx context.Context) ([]*protocol.Node, error) {
	resp, err := c.rpc.Call(ctx, &protocol.RPC_Request{
		Kind: protocol.RPC_GET_CONNECTED_NODES,
	})
	if err != nil {
		return nil, ring.ErrorMapper(err)
	}
	if resp.GetConnectedNodes() == nil {
		return nil, ErrMalformedResponse
	}
	return resp.GetConnectedNodes().GetNodes(), nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

// Register registers addr with reg, asking again for a fresh identifier
// whenever the one handed out collides with an existing node.
func Register(ctx context.Context, logger *zap.Logger, reg ring.Registry, addr string) (*protocol.RegisterResponse, error) {
	return retry.DoWithData(func() (*protocol.RegisterResponse, error) {
		return reg.RegisterNode(ctx, addr)
	},
		retry.Context(ctx),
		retry.Attempts(timing.RegisterAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ring.ErrDuplicateNodeID)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Info("Identifier collision, registering again", zap.String("address", addr), zap.Uint("attempt", n+1))
		}),
	)
}
