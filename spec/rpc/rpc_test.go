package rpc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestFrameRoundTrip(t *testing.T) {
	as := require.New(t)

	var buf bytes.Buffer
	frames := []*protocol.RPC_Response{
		{TransferEntry: &protocol.KeyValueEntry{Key: 1, Value: []byte("one")}},
		{TransferEntry: &protocol.KeyValueEntry{Key: 2, Value: []byte("two")}},
		{EndOfStream: true},
	}
	for _, f := range frames {
		as.NoError(WriteFrame(&buf, f))
	}

	for i := 0; i < 2; i++ {
		resp := &protocol.RPC_Response{}
		as.NoError(ReadFrame(&buf, resp))
		as.Equal(frames[i].GetTransferEntry().GetKey(), resp.GetTransferEntry().GetKey())
		as.Equal(frames[i].GetTransferEntry().GetValue(), resp.GetTransferEntry().GetValue())
	}

	resp := &protocol.RPC_Response{}
	as.NoError(ReadFrame(&buf, resp))
	as.True(resp.GetEndOfStream())

	as.Error(ReadFrame(&buf, resp))
}

func TestReadFrameOversized(t *testing.T) {
	as := require.New(t)

	hdr := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(hdr, uint32(MaxFrameSize)+1)

	err := ReadFrame(bytes.NewReader(hdr), &protocol.RPC_Response{})
	as.ErrorIs(err, ErrFrameTooLarge)
}

func TestReadFrameTruncated(t *testing.T) {
	as := require.New(t)

	var buf bytes.Buffer
	as.NoError(WriteFrame(&buf, &protocol.RPC_Request{
		Kind:         protocol.RPC_QUERY_DHT,
		QueryRequest: &protocol.Query{Key: []byte("key")},
	}))
	truncated := buf.Bytes()[:buf.Len()-1]

	err := ReadFrame(bytes.NewReader(truncated), &protocol.RPC_Request{})
	as.ErrorIs(err, io.ErrUnexpectedEOF)
}

func TestErrorWireMapping(t *testing.T) {
	as := require.New(t)

	cases := []struct {
		err  error
		code twirp.ErrorCode
	}{
		{ring.ErrKeyNotFound, twirp.InvalidArgument},
		{ring.ErrMissingPredecessor, twirp.Internal},
		{fmt.Errorf("dialing: %w", ring.ErrConnectionFailed), twirp.Unavailable},
		{errors.New("boom"), twirp.Internal},
	}

	for _, tc := range cases {
		wire := ErrorToWire(tc.err)
		as.Equal(string(tc.code), wire.GetCode())

		rebuilt := ErrorFromWire(wire)
		var twerr twirp.Error
		as.ErrorAs(rebuilt, &twerr)
		as.Equal(tc.code, twerr.Code())
	}

	rebuilt := ErrorFromWire(ErrorToWire(ring.ErrMissingPredecessor))
	as.ErrorIs(ring.ErrorMapper(rebuilt), ring.ErrMissingPredecessor)
}

func TestErrorFromWireUnknownCode(t *testing.T) {
	as := require.New(t)

	err := ErrorFromWire(&protocol.Error{Code: "bogus", Msg: "x"})
	var twerr twirp.Error
	as.ErrorAs(err, &twerr)
	as.Equal(twirp.Unknown, twerr.Code())
}
