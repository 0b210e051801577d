package memory

import (
	"math/rand"
	"sync"
	"testing"

	"go.miragespace.co/chordring/spec/ring"

	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	as := require.New(t)
	s := New()

	_, ok := s.Get(1)
	as.False(ok)

	prev, ok := s.Set(1, []byte("a"))
	as.False(ok)
	as.Nil(prev)

	prev, ok = s.Set(1, []byte("b"))
	as.True(ok)
	as.Equal([]byte("a"), prev)

	val, ok := s.Get(1)
	as.True(ok)
	as.Equal([]byte("b"), val)

	prev, ok = s.Delete(1)
	as.True(ok)
	as.Equal([]byte("b"), prev)

	_, ok = s.Delete(1)
	as.False(ok)
	as.Equal(0, s.Len())
}

func TestEmptyValueIsPresent(t *testing.T) {
	as := require.New(t)
	s := New()

	s.Set(9, []byte{})
	val, ok := s.Get(9)
	as.True(ok)
	as.Len(val, 0)
}

func TestScanOrdered(t *testing.T) {
	as := require.New(t)
	s := New()

	keys := []uint64{ring.MaxIdentifier, 5, 100, 0, 42}
	for _, k := range keys {
		s.Set(k, []byte{byte(k)})
	}

	all := s.Scan(func(uint64) bool { return true })
	as.Len(all, len(keys))
	for i := 1; i < len(all); i++ {
		as.Less(all[i-1].GetKey(), all[i].GetKey())
	}

	wrapped := s.Scan(func(key uint64) bool {
		return ring.Owns(ring.MaxIdentifier-1, 10, key)
	})
	as.Len(wrapped, 3)

	// Scan does not remove anything
	as.Equal(len(keys), s.Len())
}

func TestConcurrentAccess(t *testing.T) {
	as := require.New(t)
	s := New()

	num := 64
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			key := uint64(i)
			s.Set(key, []byte{byte(i)})
			s.Get(key)
			s.Scan(func(k uint64) bool { return k%2 == 0 })
			if rand.Intn(2) == 0 {
				s.Set(key, []byte{byte(i), 1})
			}
		}(i)
	}
	wg.Wait()

	as.Equal(num, s.Len())
}
