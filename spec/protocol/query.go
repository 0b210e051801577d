package protocol

import "google.golang.org/protobuf/encoding/protowire"

type OperationType int32

const (
	OperationType_SET    OperationType = 0
	OperationType_GET    OperationType = 1
	OperationType_DELETE OperationType = 2
)

func (t OperationType) String() string {
	switch t {
	case OperationType_SET:
		return "SET"
	case OperationType_GET:
		return "GET"
	case OperationType_DELETE:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Query is a client request addressed by the raw key. Value is nil when absent.
type Query struct {
	Ty    OperationType
	Key   []byte
	Value []byte
}

func (m *Query) GetTy() OperationType {
	if m != nil {
		return m.Ty
	}
	return OperationType_SET
}

func (m *Query) GetKey() []byte {
	if m != nil {
		return m.Key
	}
	return nil
}

func (m *Query) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *Query) HasValue() bool {
	return m != nil && m.Value != nil
}

func (m *Query) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, uint64(m.Ty))
	n += sizeOptionalBytes(2, m.Key)
	n += sizeOptionalBytes(3, m.Value)
	return
}

func (m *Query) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Ty))
	b = appendOptionalBytes(b, 2, m.Key)
	b = appendOptionalBytes(b, 3, m.Value)
	return b
}

func (m *Query) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *Query) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *Query) UnmarshalVT(dAtA []byte) error {
	*m = Query{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var v uint64
		switch num {
		case 1:
			v, n, err = consumeVarint(typ, b)
			m.Ty = OperationType(v)
		case 2:
			m.Key, n, err = consumeBytes(typ, b)
		case 3:
			m.Value, n, err = consumeBytes(typ, b)
		}
		return
	})
}

// EncodedQuery is a Query whose key has already been hashed onto the ring.
type EncodedQuery struct {
	Ty    OperationType
	Key   uint64
	Value []byte
}

func (m *EncodedQuery) GetTy() OperationType {
	if m != nil {
		return m.Ty
	}
	return OperationType_SET
}

func (m *EncodedQuery) GetKey() uint64 {
	if m != nil {
		return m.Key
	}
	return 0
}

func (m *EncodedQuery) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *EncodedQuery) HasValue() bool {
	return m != nil && m.Value != nil
}

func (m *EncodedQuery) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, uint64(m.Ty))
	n += sizeVarint(2, m.Key)
	n += sizeOptionalBytes(3, m.Value)
	return
}

func (m *EncodedQuery) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, uint64(m.Ty))
	b = appendVarint(b, 2, m.Key)
	b = appendOptionalBytes(b, 3, m.Value)
	return b
}

func (m *EncodedQuery) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *EncodedQuery) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *EncodedQuery) UnmarshalVT(dAtA []byte) error {
	*m = EncodedQuery{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		var v uint64
		switch num {
		case 1:
			v, n, err = consumeVarint(typ, b)
			m.Ty = OperationType(v)
		case 2:
			m.Key, n, err = consumeVarint(typ, b)
		case 3:
			m.Value, n, err = consumeBytes(typ, b)
		}
		return
	})
}

// QueryResult carries either a value, a domain error, or neither when there was no prior value.
type QueryResult struct {
	Value []byte
	Error string
}

func (m *QueryResult) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *QueryResult) GetError() string {
	if m != nil {
		return m.Error
	}
	return ""
}

func (m *QueryResult) HasValue() bool {
	return m != nil && m.Value != nil
}

func (m *QueryResult) HasError() bool {
	return m != nil && m.Error != ""
}

func (m *QueryResult) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeOptionalBytes(1, m.Value)
	n += sizeString(2, m.Error)
	return
}

func (m *QueryResult) appendVT(b []byte) []byte {
	b = appendOptionalBytes(b, 1, m.Value)
	b = appendString(b, 2, m.Error)
	return b
}

func (m *QueryResult) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *QueryResult) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *QueryResult) UnmarshalVT(dAtA []byte) error {
	*m = QueryResult{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Value, n, err = consumeBytes(typ, b)
		case 2:
			m.Error, n, err = consumeString(typ, b)
		}
		return
	})
}

// KeyValueEntry is one hashed key and its value, streamed during handoff.
type KeyValueEntry struct {
	Key   uint64
	Value []byte
}

func (m *KeyValueEntry) GetKey() uint64 {
	if m != nil {
		return m.Key
	}
	return 0
}

func (m *KeyValueEntry) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *KeyValueEntry) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	n += sizeVarint(1, m.Key)
	n += sizeOptionalBytes(2, m.Value)
	return
}

func (m *KeyValueEntry) appendVT(b []byte) []byte {
	b = appendVarint(b, 1, m.Key)
	b = appendOptionalBytes(b, 2, m.Value)
	return b
}

func (m *KeyValueEntry) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *KeyValueEntry) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *KeyValueEntry) UnmarshalVT(dAtA []byte) error {
	*m = KeyValueEntry{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Key, n, err = consumeVarint(typ, b)
		case 2:
			m.Value, n, err = consumeBytes(typ, b)
		}
		return
	})
}

// TransferRequest asks a predecessor to hand over the keys now owned by Target.
type TransferRequest struct {
	Target uint64
}

func (m *TransferRequest) GetTarget() uint64 {
	if m != nil {
		return m.Target
	}
	return 0
}

func (m *TransferRequest) SizeVT() (n int) {
	if m == nil {
		return 0
	}
	return sizeVarint(1, m.Target)
}

func (m *TransferRequest) appendVT(b []byte) []byte {
	return appendVarint(b, 1, m.Target)
}

func (m *TransferRequest) MarshalVT() ([]byte, error) { return marshalVT(m) }

func (m *TransferRequest) MarshalToSizedBufferVT(dAtA []byte) (int, error) {
	return marshalToSizedBufferVT(m, dAtA)
}

func (m *TransferRequest) UnmarshalVT(dAtA []byte) error {
	*m = TransferRequest{}
	return unmarshalFields(dAtA, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		if num == 1 {
			m.Target, n, err = consumeVarint(typ, b)
		}
		return
	})
}
