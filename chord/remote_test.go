package chord

import (
	"context"
	"errors"
	"testing"

	"go.miragespace.co/chordring/spec/mocks"
	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"
	"go.miragespace.co/chordring/spec/rpc"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestRemoteRegisterRequest(t *testing.T) {
	as := require.New(t)

	caller := &protocol.Node{Id: 7, Address: "caller"}
	m := new(mocks.RPC)
	m.On("Call", mock.Anything, mock.MatchedBy(func(req *protocol.RPC_Request) bool {
		info := req.GetRegisterRequest()
		return req.GetKind() == protocol.RPC_REGISTER_AS_NEIGHBOR &&
			info.GetTy() == protocol.NeighborType_PREVIOUS &&
			info.GetId() == 7 &&
			info.GetAddr() == "caller"
	})).Return(&protocol.RPC_Response{
		RegisterResponse: &protocol.PreviousNeighbors{
			Next: &protocol.Node{Id: 3},
		},
	}, nil).Once()

	r := NewRemoteNode(&protocol.Node{Id: 1, Address: "remote"}, m)
	as.Equal(uint64(1), r.ID())

	snapshot, err := r.AdoptPredecessor(context.Background(), caller)
	as.NoError(err)
	as.Equal(uint64(3), snapshot.GetNext().GetId())

	m.AssertExpectations(t)
}

func TestRemoteErrorMapping(t *testing.T) {
	as := require.New(t)

	m := new(mocks.RPC)
	twerr := rpc.ErrorFromWire(rpc.ErrorToWire(ring.ErrMissingPredecessor))
	m.On("Call", mock.Anything, mock.Anything).Return(nil, twerr).Once()
	m.On("Stream", mock.Anything, mock.Anything, mock.Anything).Return(twirp.NewError(twirp.Internal, ring.ErrDegenerateNeighbor.Error())).Once()

	r := NewRemoteNode(&protocol.Node{Id: 1, Address: "remote"}, m)

	_, err := r.ForwardQuery(context.Background(), &protocol.EncodedQuery{Key: 1})
	as.ErrorIs(err, ring.ErrMissingPredecessor)

	err = r.TransferKeys(context.Background(), 5, func(*protocol.KeyValueEntry) error { return nil })
	as.ErrorIs(err, ring.ErrDegenerateNeighbor)

	m.AssertExpectations(t)
}

func TestRemoteMalformedResponse(t *testing.T) {
	as := require.New(t)

	m := new(mocks.RPC)
	m.On("Call", mock.Anything, mock.Anything).Return(&protocol.RPC_Response{}, nil)

	r := NewRemoteNode(&protocol.Node{Id: 1, Address: "remote"}, m)

	_, err := r.QueryDHT(context.Background(), &protocol.Query{Key: []byte("k")})
	as.ErrorIs(err, ErrMalformedResponse)

	_, err = r.AdoptSuccessor(context.Background(), &protocol.Node{Id: 2})
	as.ErrorIs(err, ErrMalformedResponse)
}

func TestRemoteTransferStream(t *testing.T) {
	as := require.New(t)

	m := new(mocks.RPC)
	m.On("Stream", mock.Anything, mock.MatchedBy(func(req *protocol.RPC_Request) bool {
		return req.GetKind() == protocol.RPC_TRANSFER_KEYS && req.GetTransferRequest().GetTarget() == 99
	}), mock.Anything).Run(func(args mock.Arguments) {
		recv := args.Get(2).(rpc.StreamFunc)
		for i := uint64(0); i < 3; i++ {
			if err := recv(&protocol.RPC_Response{
				TransferEntry: &protocol.KeyValueEntry{Key: i},
			}); err != nil {
				return
			}
		}
	}).Return(nil).Once()

	r := NewRemoteNode(&protocol.Node{Id: 1, Address: "remote"}, m)

	keys := make([]uint64, 0)
	err := r.TransferKeys(context.Background(), 99, func(entry *protocol.KeyValueEntry) error {
		keys = append(keys, entry.GetKey())
		return nil
	})
	as.NoError(err)
	as.Equal([]uint64{0, 1, 2}, keys)

	m.On("Close").Return(errors.New("closed")).Once()
	as.Error(r.Close())
}
