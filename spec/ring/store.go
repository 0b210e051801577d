package ring

import "go.miragespace.co/chordring/spec/protocol"

// Store is the per-node map from hashed key to value.
type Store interface {
	Get(key uint64) ([]byte, bool)
	// Set returns the replaced value, if any.
	Set(key uint64, value []byte) ([]byte, bool)
	// Delete returns the removed value, if any.
	Delete(key uint64) ([]byte, bool)
	// Scan returns a snapshot of every entry whose key satisfies match.
	Scan(match func(key uint64) bool) []*protocol.KeyValueEntry
	Len() int
}
