package chord

import (
	"context"
	"fmt"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rpc"

	"go.uber.org/zap"
)

// Server exposes a VNode over RPC.
type Server struct {
	Logger    *zap.Logger
	LocalNode ring.VNode
}

func (s *Server) Handler() rpc.Handler {
	return s.handle
}

func (s *Server) handle(ctx context.Context, req *protocol.RPC_Request, send rpc.StreamFunc) (*protocol.RPC_Response, error) {
	switch req.GetKind() {
	case protocol.RPC_REGISTER_AS_NEIGHBOR:
		info := req.GetRegisterRequest()
		if info == nil {
			return nil, ring.ErrNodeNil
		}
		var (
			snapshot *protocol.PreviousNeighbors
			err      error
		)
		switch info.GetTy() {
		case protocol.NeighborType_NEXT:
			snapshot, err = s.LocalNode.AdoptSuccessor(ctx, info.Node())
		case protocol.NeighborType_PREVIOUS:
			snapshot, err = s.LocalNode.AdoptPredecessor(ctx, info.Node())
		default:
			err = ring.ErrUnknownNeighbor
		}
		if err != nil {
			return nil, err
		}
		return &protocol.RPC_Response{
			RegisterResponse: snapshot,
		}, nil

	case protocol.RPC_QUERY_DHT:
		result, err := s.LocalNode.QueryDHT(ctx, req.GetQueryRequest())
		if err != nil {
			return nil, err
		}
		return &protocol.RPC_Response{
			QueryResponse: result,
		}, nil

	case protocol.RPC_FORWARD_QUERY:
		result, err := s.LocalNode.ForwardQuery(ctx, req.GetForwardRequest())
		if err != nil {
			return nil, err
		}
		return &protocol.RPC_Response{
			QueryResponse: result,
		}, nil

	case protocol.RPC_TRANSFER_KEYS:
		target := req.GetTransferRequest().GetTarget()
		err := s.LocalNode.TransferKeys(ctx, target, func(entry *protocol.KeyValueEntry) error {
			return send(&protocol.RPC_Response{
				TransferEntry: entry,
			})
		})
		return nil, err

	default:
		s.Logger.Warn("Unknown RPC Call", zap.String("kind", req.GetKind().String()))
		return nil, fmt.Errorf("unknown RPC call: %s", req.GetKind())
	}
}
