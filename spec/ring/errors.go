package ring

import (
	"context"
	"errors"

	"github.com/twitchtv/twirp"
)

// Kind classifies an error for mapping onto the wire.
type Kind int

const (
	// KindInternal errors mean the ring is in an impossible shape; they fail the in-flight call.
	KindInternal Kind = iota
	// KindValue errors are domain failures that are reported as data in a query result.
	KindValue
	// KindUnavailable errors are raised when a peer cannot be reached.
	KindUnavailable
)

var (
	ErrKeyNotFound   = errorDef("Key not present in database.", KindValue)
	ErrValueRequired = errorDef("Value not provided.", KindValue)

	ErrMissingPredecessor = errorDef("chord: node has a successor but no predecessor", KindInternal)
	ErrDegenerateNeighbor = errorDef("chord: successor has the same identifier as the node", KindInternal)
	ErrUnknownOperation   = errorDef("chord: unknown query operation", KindInternal)
	ErrUnknownNeighbor    = errorDef("chord: unknown neighbor slot", KindInternal)
	ErrNodeNil            = errorDef("chord: node cannot be nil", KindInternal)
	ErrInvalidState       = errorDef("chord: node cannot handle the request in its current state", KindInternal)
	ErrJoinHandshake      = errorDef("chord/membership: neighbor handshake failed", KindInternal)
	ErrJoinTransfer       = errorDef("chord/membership: failed to pull keys from predecessor", KindInternal)

	ErrConnectionFailed = errorDef("chord: unable to connect to node", KindUnavailable)

	ErrDuplicateNodeID = errorDef("registry: node identifier is already registered", KindValue)
	ErrEmptyAddress    = errorDef("registry: node address cannot be empty", KindValue)
)

// ErrorKind returns the Kind of a known error, defaulting to KindInternal.
func ErrorKind(err error) Kind {
	for known, kind := range kindMap {
		if errors.Is(err, known) {
			return kind
		}
	}
	return KindInternal
}

func ErrorIsValue(err error) bool {
	return err != nil && ErrorKind(err) == KindValue
}

func ErrorIsInternal(err error) bool {
	return err != nil && ErrorKind(err) == KindInternal
}

// ErrorIsRetryable reports whether a caller may retry the operation that
// produced err against the same peer.
func ErrorIsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return err != nil && ErrorKind(err) == KindUnavailable
}

// ErrorMapper restores the sentinel value of err after it crossed an RPC boundary,
// where only the message survives.
func ErrorMapper(err error) error {
	if err == nil {
		return err
	}

	var (
		srcErr    = err.Error()
		parsedErr = err
	)

	var twirpErr twirp.Error
	if errors.As(err, &twirpErr) {
		srcErr = twirpErr.Msg()
	}

	if mapped, ok := errorStrMap[srcErr]; ok {
		parsedErr = mapped
	}

	return parsedErr
}

var kindMap = map[error]Kind{}

var errorStrMap = map[string]error{}

func errorDef(str string, kind Kind) error {
	err := errors.New(str)
	kindMap[err] = kind
	errorStrMap[str] = err
	return err
}
