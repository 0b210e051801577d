package rpc

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/rpc"

	"github.com/libp2p/go-yamux/v4"
	"go.uber.org/zap"
)

// Server accepts yamux sessions and serves every stream with Handler.
type Server struct {
	Logger  *zap.Logger
	Handler rpc.Handler

	wg sync.WaitGroup
}

func defaultHandler(_ context.Context, _ *protocol.RPC_Request, _ rpc.StreamFunc) (*protocol.RPC_Response, error) {
	return nil, ErrNoHandler
}

// Serve blocks until ctx is cancelled or the listener fails. It waits for
// in-flight streams to finish before returning.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer s.wg.Wait()

	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.HandleConn(ctx, conn)
		}()
	}
}

// HandleConn serves a single connection until either side closes it or ctx is cancelled.
func (s *Server) HandleConn(ctx context.Context, conn net.Conn) {
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = io.Discard
	session, err := yamux.Server(conn, cfg, nil)
	if err != nil {
		s.Logger.Error("Failed to establish yamux session", zap.Error(err))
		conn.Close()
		return
	}
	defer session.Close()

	stop := context.AfterFunc(ctx, func() {
		session.Close()
	})
	defer stop()

	var streams sync.WaitGroup
	defer streams.Wait()

	for {
		stream, err := session.AcceptStream()
		if err != nil {
			return
		}
		streams.Add(1)
		go func() {
			defer streams.Done()
			s.handleStream(ctx, stream)
		}()
	}
}

func (s *Server) handleStream(ctx context.Context, stream *yamux.Stream) {
	defer stream.Close()

	handler := s.Handler
	if handler == nil {
		handler = defaultHandler
	}

	req := &protocol.RPC_Request{}
	if err := rpc.ReadFrame(stream, req); err != nil {
		s.Logger.Debug("RPC receive read error", zap.Error(err))
		return
	}

	send := func(resp *protocol.RPC_Response) error {
		return rpc.WriteFrame(stream, resp)
	}

	resp, err := handler(ctx, req, send)
	switch {
	case err != nil:
		resp = &protocol.RPC_Response{
			Error: rpc.ErrorToWire(err),
		}
	case resp == nil:
		resp = &protocol.RPC_Response{
			EndOfStream: true,
		}
	}

	if err := rpc.WriteFrame(stream, resp); err != nil {
		s.Logger.Debug("RPC receiver send error", zap.String("kind", req.GetKind().String()), zap.Error(err))
	}
}
