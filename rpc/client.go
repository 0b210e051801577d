package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/rpc"

	"github.com/libp2p/go-yamux/v4"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	ErrClosed      = errors.New("RPC channel already closed")
	ErrNoHandler   = errors.New("RPC channel has no request handler")
	ErrEmptyStream = errors.New("RPC stream ended without a response")
)

// Client multiplexes RPC calls over a single connection, one yamux stream per call.
type Client struct {
	logger  *zap.Logger
	session *yamux.Session
	closed  *atomic.Bool
}

var _ rpc.RPC = (*Client)(nil)

func NewClient(logger *zap.Logger, conn net.Conn) (*Client, error) {
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = io.Discard
	session, err := yamux.Client(conn, cfg, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("establishing yamux session: %w", err)
	}
	return &Client{
		logger:  logger,
		session: session,
		closed:  atomic.NewBool(false),
	}, nil
}

func (c *Client) openStream(ctx context.Context) (*yamux.Stream, func() bool, error) {
	if c.closed.Load() {
		return nil, nil, ErrClosed
	}
	stream, err := c.session.OpenStream(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("opening RPC stream: %w", err)
	}
	// unblock pending reads when the caller gives up
	stop := context.AfterFunc(ctx, func() {
		stream.Reset()
	})
	return stream, stop, nil
}

func (c *Client) Call(ctx context.Context, req *protocol.RPC_Request) (*protocol.RPC_Response, error) {
	stream, stop, err := c.openStream(ctx)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	defer stop()

	if err := rpc.WriteFrame(stream, req); err != nil {
		return nil, c.contextError(ctx, err)
	}

	resp := &protocol.RPC_Response{}
	if err := rpc.ReadFrame(stream, resp); err != nil {
		return nil, c.contextError(ctx, err)
	}
	if resp.GetError() != nil {
		return nil, rpc.ErrorFromWire(resp.GetError())
	}
	return resp, nil
}

func (c *Client) Stream(ctx context.Context, req *protocol.RPC_Request, recv rpc.StreamFunc) error {
	stream, stop, err := c.openStream(ctx)
	if err != nil {
		return err
	}
	defer stream.Close()
	defer stop()

	if err := rpc.WriteFrame(stream, req); err != nil {
		return c.contextError(ctx, err)
	}

	for {
		resp := &protocol.RPC_Response{}
		if err := rpc.ReadFrame(stream, resp); err != nil {
			if errors.Is(err, io.EOF) {
				return ErrEmptyStream
			}
			return c.contextError(ctx, err)
		}
		if resp.GetError() != nil {
			return rpc.ErrorFromWire(resp.GetError())
		}
		if resp.GetEndOfStream() {
			return nil
		}
		if err := recv(resp); err != nil {
			return err
		}
	}
}

func (c *Client) contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.logger.Debug("Closing RPC channel", zap.String("remote", c.session.RemoteAddr().String()))
	return c.session.Close()
}
