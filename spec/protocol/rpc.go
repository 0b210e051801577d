package protocol

import "google.golang.org/protobuf/encoding/protowire"

type RPC_Kind int32

const (
	RPC_UNKNOWN_KIND         RPC_Kind = 0
	RPC_REGISTER_AS_NEIGHBOR RPC_Kind = 1
	RPC_QUERY_DHT            RPC_Kind = 2
	RPC_FORWARD_QUERY        RPC_Kind = 3
	RPC_TRANSFER_KEYS        RPC_Kind = 4
	RPC_REGISTER_NODE        RPC_Kind = 5
	RPC_GET_CONNECTED_NODES  RPC_Kind = 6
)

var rpcKindNames = map[RPC_Kind]string{
	RPC_UNKNOWN_KIND:         "UNKNOWN_KIND",
	RPC_REGISTER_AS_NEIGHBOR: "REGISTER_AS_NEIGHBOR",
	RPC_QUERY_DHT:            "QUERY_DHT",
	RPC_FORWARD_QUERY:        "FORWARD_QUERY",
	RPC_TRANSFER_KEYS:        "TRANSFER_KEYS",
	RPC_REGISTER_NODE:        "REGISTER_NODE",
	RPC_GET_CONNECTED_NODES:  "GET_CONNECTED_NODES",
}

func (k RPC_Kind) String() string {
	if s, ok := rpcKindNames[k]; ok {
		return s
	}
	return "UNKNOWN_KIND"
}

// Error is a twirp error flattened onto the wire.
type Error struct {
	Code  string
	Msg   string
	Cause string
}

func (m *Error) GetCode() string {
	if m != nil {
		return m.Code
	}
	return ""
}

func (m *Error) GetMsg() string {
	if m != nil {
		return m.Msg
	}
	return ""
}

func (m *Error) GetCause() string {
	if m != nil {
		return m.Cause
	}
	return ""
}

func (m *Error) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeString(1, m.Code)
	n += sizeString(2, m.Msg)
	n += sizeString(3, m.Cause)
	return
}

func (m *Error) appendVT(b []byte) []byte {
	b = appendString(b, 1, m.Code)
	b = appendString(b, 2, m.Msg)
	b = appendString(b, 3, m.Cause)
	return b
}

func (m *Error) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *Error) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *Error) UnmarshalVT(dAtA []byte) error {
	*m = Error{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Code, n, err = consumeString(typ, b)
		case 2:
			m.Msg, n, err = consumeString(typ, b)
		case 3:
			m.Cause, n, err = consumeString(typ, b)
		}
		return
	})
}

type RPC_Request struct {
	Kind             RPC_Kind
	RegisterRequest  *NeighborRegisterInfo
	QueryRequest     *Query
	ForwardRequest   *EncodedQuery
	TransferRequest  *TransferRequest
	RegisterNodeInfo *RegisterRequest
}

func (m *RPC_Request) GetKind() RPC_Kind {
	if m != nil {
		return m.Kind
	}
	return RPC_UNKNOWN_KIND
}

func (m *RPC_Request) GetRegisterRequest() *NeighborRegisterInfo {
	if m != nil {
		return m.RegisterRequest
	}
	return nil
}

func (m *RPC_Request) GetQueryRequest() *Query {
	if m != nil {
		return m.QueryRequest
	}
	return nil
}

func (m *RPC_Request) GetForwardRequest() *EncodedQuery {
	if m != nil {
		return m.ForwardRequest
	}
	return nil
}

func (m *RPC_Request) GetTransferRequest() *TransferRequest {
	if m != nil {
		return m.TransferRequest
	}
	return nil
}

func (m *RPC_Request) GetRegisterNodeInfo() *RegisterRequest {
	if m != nil {
		return m.RegisterNodeInfo
	}
	return nil
}

func (m *RPC_Request) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, uint64(m.Kind))
	if m.RegisterRequest != nil {
		n += sizeMessage(2, m.RegisterRequest)
	}
	if m.QueryRequest != nil {
		n += sizeMessage(3, m.QueryRequest)
	}
	if m.ForwardRequest != nil {
		n += sizeMessage(4, m.ForwardRequest)
	}
	if m.TransferRequest != nil {
		n += sizeMessage(5, m.TransferRequest)
	}
	if m.RegisterNodeInfo != nil {
		n += sizeMessage(6, m.RegisterNodeInfo)
	}
	return
}

func (m *RPC_Request) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Kind))
	if m.RegisterRequest != nil {
		b = appendMessage(b, 2, m.RegisterRequest)
	}
	if m.QueryRequest != nil {
		b = appendMessage(b, 3, m.QueryRequest)
	}
	if m.ForwardRequest != nil {
		b = appendMessage(b, 4, m.ForwardRequest)
	}
	if m.TransferRequest != nil {
		b = appendMessage(b, 5, m.TransferRequest)
	}
	if m.RegisterNodeInfo != nil {
		b = appendMessage(b, 6, m.RegisterNodeInfo)
	}
	return b
}

func (m *RPC_Request) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *RPC_Request) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *RPC_Request) UnmarshalVT(dAtA []byte) error {
	*m = RPC_Request{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var v uint64
		switch num {
		case 1:
			v, n, err = consumeVarint(typ, b)
			m.Kind = RPC_Kind(v)
		case 2:
			m.RegisterRequest = &NeighborRegisterInfo{}
			n, err = consumeMessage(typ, b, m.RegisterRequest)
		case 3:
			m.QueryRequest = &Query{}
			n, err = consumeMessage(typ, b, m.QueryRequest)
		case 4:
			m.ForwardRequest = &EncodedQuery{}
			n, err = consumeMessage(typ, b, m.ForwardRequest)
		case 5:
			m.TransferRequest = &TransferRequest{}
			n, err = consumeMessage(typ, b, m.TransferRequest)
		case 6:
			m.RegisterNodeInfo = &RegisterRequest{}
			n, err = consumeMessage(typ, b, m.RegisterNodeInfo)
		}
		return
	})
}

type RPC_Response struct {
	Error            *Error
	RegisterResponse *PreviousNeighbors
	QueryResponse    *QueryResult
	TransferEntry    *KeyValueEntry
	RegisterNodeInfo *RegisterResponse
	ConnectedNodes   *NodeList
	// EndOfStream terminates a streaming response
	EndOfStream bool
}

func (m *RPC_Response) GetError() *Error {
	if m != nil {
		return m.Error
	}
	return nil
}

func (m *RPC_Response) GetRegisterResponse() *PreviousNeighbors {
	if m != nil {
		return m.RegisterResponse
	}
	return nil
}

func (m *RPC_Response) GetQueryResponse() *QueryResult {
	if m != nil {
		return m.QueryResponse
	}
	return nil
}

func (m *RPC_Response) GetTransferEntry() *KeyValueEntry {
	if m != nil {
		return m.TransferEntry
	}
	return nil
}

func (m *RPC_Response) GetRegisterNodeInfo() *RegisterResponse {
	if m != nil {
		return m.RegisterNodeInfo
	}
	return nil
}

func (m *RPC_Response) GetConnectedNodes() *NodeList {
	if m != nil {
		return m.ConnectedNodes
	}
	return nil
}

func (m *RPC_Response) GetEndOfStream() bool {
	if m != nil {
		return m.EndOfStream
	}
	return false
}

func (m *RPC_Response) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	if m.Error != nil {
		n += sizeMessage(1, m.Error)
	}
	if m.RegisterResponse != nil {
		n += sizeMessage(2, m.RegisterResponse)
	}
	if m.QueryResponse != nil {
		n += sizeMessage(3, m.QueryResponse)
	}
	if m.TransferEntry != nil {
		n += sizeMessage(4, m.TransferEntry)
	}
	if m.RegisterNodeInfo != nil {
		n += sizeMessage(5, m.RegisterNodeInfo)
	}
	if m.ConnectedNodes != nil {
		n += sizeMessage(6, m.ConnectedNodes)
	}
	n += sizeBool(7, m.EndOfStream)
	return
}

func (m *RPC_Response) appendVT(b []byte) []byte {
	if m.Error != nil {
		b = appendMessage(b, 1, m.Error)
	}
	if m.RegisterResponse != nil {
		b = appendMessage(b, 2, m.RegisterResponse)
	}
	if m.QueryResponse != nil {
		b = appendMessage(b, 3, m.QueryResponse)
	}
	if m.TransferEntry != nil {
		b = appendMessage(b, 4, m.TransferEntry)
	}
	if m.RegisterNodeInfo != nil {
		b = appendMessage(b, 5, m.RegisterNodeInfo)
	}
	if m.ConnectedNodes != nil {
		b = appendMessage(b, 6, m.ConnectedNodes)
	}
	b = appendBool(b, 7, m.EndOfStream)
	return b
}

func (m *RPC_Response) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *RPC_Response) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *RPC_Response) UnmarshalVT(dAtA []byte) error {
	*m = RPC_Response{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var v uint64
		switch num {
		case 1:
			m.Error = &Error{}
			n, err = consumeMessage(typ, b, m.Error)
		case 2:
			m.RegisterResponse = &PreviousNeighbors{}
			n, err = consumeMessage(typ, b, m.RegisterResponse)
		case 3:
			m.QueryResponse = &QueryResult{}
			n, err = consumeMessage(typ, b, m.QueryResponse)
		case 4:
			m.TransferEntry = &KeyValueEntry{}
			n, err = consumeMessage(typ, b, m.TransferEntry)
		case 5:
			m.RegisterNodeInfo = &RegisterResponse{}
			n, err = consumeMessage(typ, b, m.RegisterNodeInfo)
		case 6:
			m.ConnectedNodes = &NodeList{}
			n, err = consumeMessage(typ, b, m.ConnectedNodes)
		case 7:
			v, n, err = consumeVarint(typ, b)
			m.EndOfStream = v != 0
		}
		return
	})
}
