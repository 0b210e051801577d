package registry

import (
	"context"
	"fmt"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rpc"

	"go.uber.org/zap"
)

// Server exposes a Registry over RPC.
type Server struct {
	Logger   *zap.Logger
	Registry ring.Registry
}

func (s *Server) Handler() rpc.Handler {
	return s.handle
}

func (s *Server) handle(ctx context.Context, req *protocol.RPC_Request, _ rpc.StreamFunc) (*protocol.RPC_Response, error) {
	switch req.GetKind() {
	case protocol.RPC_REGISTER_NODE:
		resp, err := s.Registry.RegisterNode(ctx, req.GetRegisterNodeInfo().GetAddress())
		if err != nil {
			return nil, err
		}
		return &protocol.RPC_Response{
			RegisterNodeInfo: resp,
		}, nil

	case protocol.RPC_GET_CONNECTED_NODES:
		nodes, err := s.Registry.GetConnectedNodes(ctx)
		if err != nil {
			return nil, err
		}
		return &protocol.RPC_Response{
			ConnectedNodes: &protocol.NodeList{
				Nodes: nodes,
			},
		}, nil

	default:
		s.Logger.Warn("Unknown RPC Call", zap.String("kind", req.GetKind().String()))
		return nil, fmt.Errorf("unknown RPC call: %s", req.GetKind())
	}
}
