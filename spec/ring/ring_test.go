package ring

import (
	"math/rand"
	"sort"
	"testing"

	"go.miragespace.co/chordring/spec/protocol"

	"github.com/stretchr/testify/require"
)

func TestOwnsWraparound(t *testing.T) {
	as := require.New(t)

	var (
		id   uint64 = 0xFFFFFFFFFFFFFFF0
		next uint64 = 0x10
	)

	as.True(Owns(id, next, 0x05))
	as.True(Owns(id, next, id))
	as.True(Owns(id, next, MaxIdentifier))
	as.True(Owns(id, next, 0))
	as.False(Owns(id, next, 0x20))
	as.False(Owns(id, next, next))
	as.False(Owns(id, next, id-1))
}

func TestOwnsHalfOpen(t *testing.T) {
	as := require.New(t)

	as.True(Owns(10, 20, 10))
	as.True(Owns(10, 20, 19))
	as.False(Owns(10, 20, 20))
	as.False(Owns(10, 20, 9))
}

func TestOwnsDegenerate(t *testing.T) {
	as := require.New(t)

	for _, key := range []uint64{0, 41, 42, 43, MaxIdentifier} {
		as.False(Owns(42, 42, key))
	}
}

func TestDistance(t *testing.T) {
	as := require.New(t)

	as.Equal(uint64(0), Distance(7, 7))
	as.Equal(uint64(10), Distance(10, 20))
	as.Equal(uint64(10), Distance(20, 10))
	as.Equal(uint64(0x20), Distance(0xFFFFFFFFFFFFFFF0, 0x10))
	as.Equal(uint64(0x20), Distance(0x10, 0xFFFFFFFFFFFFFFF0))
	as.Equal(uint64(1<<63), Distance(0, 1<<63))
}

func TestCCWDistance(t *testing.T) {
	as := require.New(t)

	as.Equal(uint64(10), CCWDistance(20, 10))
	as.Equal(MaxIdentifier-9, CCWDistance(10, 20))
	as.Equal(uint64(0x20), CCWDistance(0x10, 0xFFFFFFFFFFFFFFF0))
	as.Equal(uint64(0), CCWDistance(5, 5))

	for i := 0; i < 1000; i++ {
		a, b := rand.Uint64(), rand.Uint64()
		if a == b {
			continue
		}
		// walking backward one way and the other covers the whole ring
		as.Equal(uint64(0), CCWDistance(a, b)+CCWDistance(b, a))
		as.Equal(Distance(a, b), min(CCWDistance(a, b), CCWDistance(b, a)))
	}
}

func makeIDs(num int) []uint64 {
	seen := make(map[uint64]bool)
	ids := make([]uint64, 0, num)
	for len(ids) < num {
		id := rand.Uint64()
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

func TestPartition(t *testing.T) {
	as := require.New(t)

	for _, num := range []int{2, 3, 8, 64} {
		ids := makeIDs(num)

		var total uint64
		for i, id := range ids {
			total += Span(id, ids[(i+1)%num])
		}
		// spans sum to 2^64, which wraps to zero
		as.Equal(uint64(0), total)

		keys := append([]uint64{0, MaxIdentifier}, ids...)
		for i := 0; i < 1000; i++ {
			keys = append(keys, rand.Uint64())
		}
		for _, key := range keys {
			owners := 0
			for i, id := range ids {
				if Owns(id, ids[(i+1)%num], key) {
					owners++
				}
			}
			as.Equal(1, owners, "key %d should have exactly one owner", key)
		}
	}
}

func TestHashStable(t *testing.T) {
	as := require.New(t)

	as.Equal(Hash([]byte("hello")), Hash([]byte("hello")))
	as.NotEqual(Hash([]byte("hello")), Hash([]byte("world")))

	as.Equal(NodeID("127.0.0.1:1234", 42), Hash([]byte("127.0.0.1:1234_42")))
	as.NotEqual(NodeID("127.0.0.1:1234", 42), NodeID("127.0.0.1:1234", 43))
}

func TestClosestPredecessor(t *testing.T) {
	as := require.New(t)

	as.Nil(ClosestPredecessor(nil, 10))

	nodes := []*protocol.Node{
		{Id: 100, Address: "a"},
		{Id: 200, Address: "b"},
		{Id: 0xFFFFFFFFFFFFFF00, Address: "c"},
	}

	as.Equal("a", ClosestPredecessor(nodes, 150).GetAddress())
	as.Equal("b", ClosestPredecessor(nodes, 250).GetAddress())
	// wraps around the top of the ring
	as.Equal("c", ClosestPredecessor(nodes, 50).GetAddress())
	as.Equal("b", ClosestPredecessor(nodes, 0xFFFFFFFFFFFFFE00).GetAddress())
	// never picks a node with the same identifier
	as.Equal("c", ClosestPredecessor(nodes, 100).GetAddress())
	as.Nil(ClosestPredecessor(nodes[:1], 100))
}
