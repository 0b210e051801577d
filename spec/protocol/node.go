package protocol

import "google.golang.org/protobuf/encoding/protowire"

// Node is the identity of a ring member: its identifier and the address it can be dialed on.
type Node struct {
	Id      uint64
	Address string
}

func (m *Node) GetId() uint64 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *Node) GetAddress() string {
	if m != nil {
		return m.Address
	}
	return ""
}

func (m *Node) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, m.Id)
	n += sizeString(2, m.Address)
	return
}

func (m *Node) appendVT(b []byte) []byte {
	if m == nil {
		return b
	}
	b = appendVarint(b, 1, m.Id)
	b = appendString(b, 2, m.Address)
	return b
}

func (m *Node) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *Node) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *Node) UnmarshalVT(dAtA []byte) error {
	*m = Node{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Id, n, err = consumeVarint(typ, b)
		case 2:
			m.Address, n, err = consumeString(typ, b)
		}
		return
	})
}

// NodeList is the list of registered nodes, in registration order.
type NodeList struct {
	Nodes []*Node
}

func (m *NodeList) GetNodes() []*Node {
	if m != nil {
		return m.Nodes
	}
	return nil
}

func (m *NodeList) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	for _, node := range m.Nodes {
		n += sizeMessage(1, node)
	}
	return
}

func (m *NodeList) appendVT(b []byte) []byte {
	for _, node := range m.Nodes {
		b = appendMessage(b, 1, node)
	}
	return b
}

func (m *NodeList) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *NodeList) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *NodeList) UnmarshalVT(dAtA []byte) error {
	*m = NodeList{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		node := &Node{}
		n, err := consumeMessage(typ, b, node)
		if err != nil {
			return 0, err
		}
		m.Nodes = append(m.Nodes, node)
		return n, nil
	})
}

// NeighborType names the slot of the receiver that a handshake updates.
type NeighborType int32

const (
	// NeighborType_NEXT asks the receiver to adopt the caller as its successor.
	NeighborType_NEXT NeighborType = 0
	// NeighborType_PREVIOUS asks the receiver to adopt the caller as its predecessor.
	NeighborType_PREVIOUS NeighborType = 1
)

func (t NeighborType) String() string {
	switch t {
	case NeighborType_NEXT:
		return "NEXT"
	case NeighborType_PREVIOUS:
		return "PREVIOUS"
	default:
		return "UNKNOWN"
	}
}

// NeighborRegisterInfo is the handshake a joining node sends to its future neighbors.
type NeighborRegisterInfo struct {
	Ty   NeighborType
	Id   uint64
	Addr string
}

func (m *NeighborRegisterInfo) GetTy() NeighborType {
	if m != nil {
		return m.Ty
	}
	return NeighborType_NEXT
}

func (m *NeighborRegisterInfo) GetId() uint64 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *NeighborRegisterInfo) GetAddr() string {
	if m != nil {
		return m.Addr
	}
	return ""
}

// Node returns the identity of the node that sent the handshake.
func (m *NeighborRegisterInfo) Node() *Node {
	return &Node{
		Id:      m.GetId(),
		Address: m.GetAddr(),
	}
}

func (m *NeighborRegisterInfo) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, uint64(m.Ty))
	n += sizeVarint(2, m.Id)
	n += sizeString(3, m.Addr)
	return
}

func (m *NeighborRegisterInfo) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Ty))
	b = appendVarint(b, 2, m.Id)
	b = appendString(b, 3, m.Addr)
	return b
}

func (m *NeighborRegisterInfo) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *NeighborRegisterInfo) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *NeighborRegisterInfo) UnmarshalVT(dAtA []byte) error {
	*m = NeighborRegisterInfo{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var v uint64
		switch num {
		case 1:
			v, n, err = consumeVarint(typ, b)
			m.Ty = NeighborType(v)
		case 2:
			m.Id, n, err = consumeVarint(typ, b)
		case 3:
			m.Addr, n, err = consumeString(typ, b)
		}
		return
	})
}

// PreviousNeighbors is the receiver's view of its neighbors before a handshake changed them.
type PreviousNeighbors struct {
	Prev *Node
	Next *Node
}

func (m *PreviousNeighbors) GetPrev() *Node {
	if m != nil {
		return m.Prev
	}
	return nil
}

func (m *PreviousNeighbors) GetNext() *Node {
	if m != nil {
		return m.Next
	}
	return nil
}

func (m *PreviousNeighbors) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	if m.Prev != nil {
		n += sizeMessage(1, m.Prev)
	}
	if m.Next != nil {
		n += sizeMessage(2, m.Next)
	}
	return
}

func (m *PreviousNeighbors) appendVT(b []byte) []byte {
	if m.Prev != nil {
		b = appendMessage(b, 1, m.Prev)
	}
	if m.Next != nil {
		b = appendMessage(b, 2, m.Next)
	}
	return b
}

func (m *PreviousNeighbors) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *PreviousNeighbors) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *PreviousNeighbors) UnmarshalVT(dAtA []byte) error {
	*m = PreviousNeighbors{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			m.Prev = &Node{}
			return consumeMessage(typ, b, m.Prev)
		case 2:
			m.Next = &Node{}
			return consumeMessage(typ, b, m.Next)
		}
		return 0, nil
	})
}
