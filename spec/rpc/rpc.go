package rpc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"go.miragespace.co/chordring/spec/protocol"

	"github.com/alecthomas/units"
	pool "github.com/libp2p/go-buffer-pool"
)

const (
	// frames are prefixed with their length as a big endian uint32
	HeaderSize = 4
	// MaxFrameSize bounds a single message on the wire
	MaxFrameSize = int(16 * units.MiB)
)

var ErrFrameTooLarge = errors.New("rpc: frame exceeds size limit")

// Message is the marshaling surface shared by every protocol message.
type Message interface {
	MarshalToSizedBufferVT(dAtA []byte) (n int, err error)
	UnmarshalVT(dAtA []byte) error
	SizeVT() int
}

// StreamFunc receives the frames of a streaming response, or pushes them on the server side.
type StreamFunc func(*protocol.RPC_Response) error

// Handler serves a single RPC request. Unary handlers return the response;
// streaming handlers push frames through send and return a nil response.
type Handler func(ctx context.Context, req *protocol.RPC_Request, send StreamFunc) (*protocol.RPC_Response, error)

type RPC interface {
	Call(ctx context.Context, req *protocol.RPC_Request) (*protocol.RPC_Response, error)
	Stream(ctx context.Context, req *protocol.RPC_Request, recv StreamFunc) error
	Close() error
}

// ReadFrame reads one length-prefixed frame from r into msg.
func ReadFrame(r io.Reader, msg Message) error {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("reading frame header: %w", err)
	}

	size := int(binary.BigEndian.Uint32(header[:]))
	if size > MaxFrameSize {
		return fmt.Errorf("%w: inbound frame of %d bytes", ErrFrameTooLarge, size)
	}

	body := pool.Get(size)
	defer pool.Put(body)

	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("reading frame body of %d bytes: %w", size, err)
	}
	if err := msg.UnmarshalVT(body); err != nil {
		return fmt.Errorf("decoding frame: %w", err)
	}
	return nil
}

// WriteFrame encodes msg and writes it to w as a single write.
func WriteFrame(w io.Writer, msg Message) error {
	size := msg.SizeVT()
	if size > MaxFrameSize {
		return fmt.Errorf("%w: outbound frame of %d bytes", ErrFrameTooLarge, size)
	}

	frame := pool.Get(HeaderSize + size)
	defer pool.Put(frame)

	binary.BigEndian.PutUint32(frame[:HeaderSize], uint32(size))
	if _, err := msg.MarshalToSizedBufferVT(frame[HeaderSize:]); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
