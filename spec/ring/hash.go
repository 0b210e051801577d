package ring

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// Hash maps an arbitrary key onto the ring.
func Hash(b []byte) uint64 {
	return xxh3.Hash(b)
}

// NodeID derives the identifier of a node from its advertised address and a salt,
// usually the current time in nanoseconds.
func NodeID(addr string, salt int64) uint64 {
	return xxh3.HashString(addr + "_" + strconv.FormatInt(salt, 10))
}
