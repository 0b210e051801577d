package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalValuePresence(t *testing.T) {
	as := require.New(t)

	absent := &Query{
		Ty:  OperationType_SET,
		Key: []byte("k"),
	}
	buf, err := absent.MarshalVT()
	as.NoError(err)

	decoded := &Query{}
	as.NoError(decoded.UnmarshalVT(buf))
	as.False(decoded.HasValue())
	as.Equal([]byte("k"), decoded.GetKey())

	empty := &Query{
		Ty:    OperationType_SET,
		Key:   []byte("k"),
		Value: []byte{},
	}
	buf, err = empty.MarshalVT()
	as.NoError(err)

	decoded = &Query{}
	as.NoError(decoded.UnmarshalVT(buf))
	as.True(decoded.HasValue())
	as.Len(decoded.GetValue(), 0)
}

func TestEmptyResultIsNoPriorValue(t *testing.T) {
	as := require.New(t)

	resp := &RPC_Response{
		QueryResponse: &QueryResult{},
	}
	buf, err := resp.MarshalVT()
	as.NoError(err)

	decoded := &RPC_Response{}
	as.NoError(decoded.UnmarshalVT(buf))
	as.NotNil(decoded.GetQueryResponse())
	as.False(decoded.GetQueryResponse().HasValue())
	as.False(decoded.GetQueryResponse().HasError())
}

func TestSizedBufferMatchesMarshal(t *testing.T) {
	as := require.New(t)

	req := &RPC_Request{
		Kind: RPC_REGISTER_AS_NEIGHBOR,
		RegisterRequest: &NeighborRegisterInfo{
			Ty:   NeighborType_PREVIOUS,
			Id:   ^uint64(0),
			Addr: "127.0.0.1:1234",
		},
	}

	expected, err := req.MarshalVT()
	as.NoError(err)
	as.Len(expected, req.SizeVT())

	buf := make([]byte, req.SizeVT())
	n, err := req.MarshalToSizedBufferVT(buf)
	as.NoError(err)
	as.Equal(len(buf), n)
	as.Equal(expected, buf)

	decoded := &RPC_Request{}
	as.NoError(decoded.UnmarshalVT(buf))
	as.Equal(RPC_REGISTER_AS_NEIGHBOR, decoded.GetKind())
	as.Equal(NeighborType_PREVIOUS, decoded.GetRegisterRequest().GetTy())
	as.Equal(^uint64(0), decoded.GetRegisterRequest().GetId())
	as.Equal("127.0.0.1:1234", decoded.GetRegisterRequest().Node().GetAddress())
}

func TestUnknownFieldsSkipped(t *testing.T) {
	as := require.New(t)

	resp := &RegisterResponse{
		Id: 5,
		Neighbor: &Node{
			Id:      1,
			Address: "a",
		},
	}
	buf, err := resp.MarshalVT()
	as.NoError(err)

	req := &TransferRequest{}
	as.NoError(req.UnmarshalVT(buf))
	as.Equal(uint64(5), req.GetTarget())
}
