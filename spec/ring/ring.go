package ring

import (
	"math"

	"go.miragespace.co/chordring/spec/protocol"
)

const (
	// MaxIdentifier is the largest identifier on the ring. The ring wraps around
	// at 2^64, so all arithmetic is done with native uint64 overflow.
	MaxIdentifier uint64 = math.MaxUint64
)

// Distance returns the length of the shorter arc between a and b.
func Distance(a, b uint64) uint64 {
	cw := b - a
	ccw := a - b
	if cw < ccw {
		return cw
	}
	return ccw
}

// CCWDistance returns the length of the arc walking backward (counter-clockwise)
// from a until b is reached. CCWDistance(a, b) != CCWDistance(b, a) in general.
func CCWDistance(a, b uint64) uint64 {
	return a - b
}

// Owns reports whether key falls within the half-open interval [id, next),
// wrapping around the top of the identifier space when id > next.
// When id == next the interval is considered empty; a node with no successor
// owns the whole ring, and callers must check that case before calling Owns.
func Owns(id, next, key uint64) bool {
	switch {
	case id < next:
		return id <= key && key < next
	case id > next:
		return id <= key || key < next
	default:
		return false
	}
}

// Span returns the number of identifiers a node at id owns when its successor
// is at next.
func Span(id, next uint64) uint64 {
	return next - id
}

// ClosestPredecessor returns the node whose identifier most closely precedes id,
// walking counter-clockwise from id. A node with the same identifier as id is
// never chosen. Returns nil when there is no candidate.
func ClosestPredecessor(nodes []*protocol.Node, id uint64) *protocol.Node {
	var (
		closest *protocol.Node
		best    uint64
	)
	for _, node := range nodes {
		if node == nil || node.GetId() == id {
			continue
		}
		d := CCWDistance(id, node.GetId())
		if closest == nil || d < best {
			closest, best = node, d
		}
	}
	return closest
}
