package protocol

import (
	"fmt"
	"io"

	"github.com/planetscale/vtprotobuf/protohelpers"
	"google.golang.org/protobuf/encoding/protowire"
)

// messages in this package encode to the protobuf wire format, and expose the same
// marshaling surface as code generated by vtprotobuf
type vtMessage interface {
	appendVT(b []byte) []byte
	SizeVT() int
}

func marshalVT(m vtMessage) ([]byte, error) {
	return m.appendVT(make([]byte, 0, m.SizeVT())), nil
}

func marshalToSizedBufferVT(m vtMessage, dAtA []byte) (int, error) {
	size := m.SizeVT()
	if len(dAtA) < size {
		return 0, io.ErrShortBuffer
	}
	i := len(dAtA) - size
	out := m.appendVT(dAtA[i:i])
	return len(out), nil
}

func sizeVarint(num protowire.Number, v uint64) int {
	if v == 0 {
		return 0
	}
	return protowire.SizeTag(num) + protohelpers.SizeOfVarint(v)
}

func sizeBool(num protowire.Number, v bool) int {
	if !v {
		return 0
	}
	return protowire.SizeTag(num) + 1
}

func sizeString(num protowire.Number, v string) int {
	if len(v) == 0 {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeBytes(len(v))
}

// sizeOptionalBytes encodes the field whenever v is non-nil, even if empty,
// so the receiver can tell an absent value from an empty one
func sizeOptionalBytes(num protowire.Number, v []byte) int {
	if v == nil {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeBytes(len(v))
}

func sizeMessage(num protowire.Number, m vtMessage) int {
	return protowire.SizeTag(num) + protowire.SizeBytes(m.SizeVT())
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendOptionalBytes(b []byte, num protowire.Number, v []byte) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m vtMessage) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(m.SizeVT()))
	return m.appendVT(b)
}

// fieldFunc decodes a single field and returns the number of bytes consumed.
// Returning 0 marks the field as unknown and it will be skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func unmarshalFields(dAtA []byte, fn fieldFunc) error {
	for len(dAtA) > 0 {
		num, typ, n := protowire.ConsumeTag(dAtA)
		if n < 0 {
			return protowire.ParseError(n)
		}
		dAtA = dAtA[n:]
		m, err := fn(num, typ, dAtA)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, dAtA)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		dAtA = dAtA[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("protocol: expected varint wire type, got %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

// consumeBytes returns a copy of the field so decoded messages do not alias
// pooled receive buffers
func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("protocol: expected bytes wire type, got %d", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, n, nil
}

func consumeString(typ protowire.Type, b []byte) (string, int, error) {
	v, n, err := consumeBytes(typ, b)
	if err != nil {
		return "", 0, err
	}
	return string(v), n, nil
}

type vtUnmarshaler interface {
	UnmarshalVT(dAtA []byte) error
}

func consumeMessage(typ protowire.Type, b []byte, m vtUnmarshaler) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("protocol: expected message wire type, got %d", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := m.UnmarshalVT(v); err != nil {
		return 0, err
	}
	return n, nil
}
