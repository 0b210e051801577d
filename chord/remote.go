package chord

import (
	"context"
	"errors"

	rpcImpl "go.miragespace.co/chordring/rpc"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rpc"
)

var ErrMalformedResponse = errors.New("chord: malformed response from remote node")

// RemoteNode is a handle to a ring member reached over RPC.
type RemoteNode struct {
	identity *protocol.Node
	rpc      rpc.RPC
}

var _ ring.VNode = (*RemoteNode)(nil)

func NewRemoteNode(identity *protocol.Node, client rpc.RPC) *RemoteNode {
	return &RemoteNode{
		identity: identity,
		rpc:      client,
	}
}

// DialFactory returns a RemoteNodeFactory that opens a new connection for every handle.
func DialFactory(dialer *rpcImpl.Dialer) RemoteNodeFactory {
	return func(ctx context.Context, node *protocol.Node) (ring.VNode, error) {
		if node == nil {
			return nil, ring.ErrNodeNil
		}
		client, err := dialer.Dial(ctx, node.GetAddress())
		if err != nil {
			return nil, err
		}
		return NewRemoteNode(node, client), nil
	}
}

func (n *RemoteNode) ID() uint64 {
	return n.identity.GetId()
}

func (n *RemoteNode) Identity() *protocol.Node {
	return n.identity
}

func (n *RemoteNode) register(ctx context.Context, ty protocol.NeighborType, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	resp, err := n.rpc.Call(ctx, &protocol.RPC_Request{
		Kind: protocol.RPC_REGISTER_AS_NEIGHBOR,
		RegisterRequest: &protocol.NeighborRegisterInfo{
			Ty:   ty,
			Id:   caller.GetId(),
			Addr: caller.GetAddress(),
		},
	})
	if err != nil {
		return nil, ring.ErrorMapper(err)
	}
	if resp.GetRegisterResponse() == nil {
		return nil, ErrMalformedResponse
	}
	return resp.GetRegisterResponse(), nil
}

func (n *RemoteNode) AdoptSuccessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	return n.register(ctx, protocol.NeighborType_NEXT, caller)
}

func (n *RemoteNode) AdoptPredecessor(ctx context.Context, caller *protocol.Node) (*protocol.PreviousNeighbors, error) {
	return n.register(ctx, protocol.NeighborType_PREVIOUS, caller)
}

func (n *RemoteNode) QueryDHT(ctx context.Context, query *protocol.Query) (*protocol.QueryResult, error) {
	resp, err := n.rpc.Call(ctx, &protocol.RPC_Request{
		Kind:         protocol.RPC_QUERY_DHT,
		QueryRequest: query,
	})
	if err != nil {
		return nil, ring.ErrorMapper(err)
	}
	if resp.GetQueryResponse() == nil {
		return nil, ErrMalformedResponse
	}
	return resp.GetQueryResponse(), nil
}

func (n *RemoteNode) ForwardQuery(ctx context.Context, query *protocol.EncodedQuery) (*protocol.QueryResult, error) {
	resp, err := n.rpc.Call(ctx, &protocol.RPC_Request{
		Kind:           protocol.RPC_FORWARD_QUERY,
		ForwardRequest: query,
	})
	if err != nil {
		return nil, ring.ErrorMapper(err)
	}
	if resp.GetQueryResponse() == nil {
		return nil, ErrMalformedResponse
	}
	return resp.GetQueryResponse(), nil
}

func (n *RemoteNode) TransferKeys(ctx context.Context, target uint64, fn ring.TransferFunc) error {
	err := n.rpc.Stream(ctx, &protocol.RPC_Request{
		Kind: protocol.RPC_TRANSFER_KEYS,
		TransferRequest: &protocol.TransferRequest{
			Target: target,
		},
	}, func(resp *protocol.RPC_Response) error {
		entry := resp.GetTransferEntry()
		if entry == nil {
			return ErrMalformedResponse
		}
		return fn(entry)
	})
	return ring.ErrorMapper(err)
}

func (n *RemoteNode) Close() error {
	return n.rpc.Close()
}
