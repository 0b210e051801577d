package protocol

import "google.golang.org/protobuf/encoding/protowire"

type RegisterRequest struct {
	Address string
}

func (m *RegisterRequest) GetAddress() string {
	if m != nil {
		return m.Address
	}
	return ""
}

func (m *RegisterRequest) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	return sizeString(1, m.Address)
}

func (m *RegisterRequest) appendVT(b []byte) []byte {
	return appendString(b, 1, m.Address)
}

func (m *RegisterRequest) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *RegisterRequest) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *RegisterRequest) UnmarshalVT(dAtA []byte) error {
	*m = RegisterRequest{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		if num == 1 {
			m.Address, n, err = consumeString(typ, b)
		}
		return
	})
}

// RegisterResponse assigns an identifier to a new node, and optionally the
// existing node it should join through.
type RegisterResponse struct {
	Id       uint64
	Neighbor *Node
}

func (m *RegisterResponse) GetId() uint64 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *RegisterResponse) GetNeighbor() *Node {
	if m != nil {
		return m.Neighbor
	}
	return nil
}

func (m *RegisterResponse) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, m.Id)
	if m.Neighbor != nil {
		n += sizeMessage(2, m.Neighbor)
	}
	return
}

func (m *RegisterResponse) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, m.Id)
	if m.Neighbor != nil {
		b = appendMessage(b, 2, m.Neighbor)
	}
	return b
}

func (m *RegisterResponse) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *RegisterResponse) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *RegisterResponse) UnmarshalVT(dAtA []byte) error {
	*m = RegisterResponse{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Id, n, err = consumeVarint(typ, b)
		case 2:
			m.Neighbor = &Node{}
			n, err = consumeMessage(typ, b, m.Neighbor)
		}
		return
	})
}
