package memory

import (
	"sync"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/zhangyunhao116/skipmap"
)

// Store keeps entries ordered by hashed key. The skipmap is safe for concurrent
// use on its own, but all access goes through mu so that a Scan observes a
// consistent snapshot with respect to Set and Delete.
type Store struct {
	mu sync.RWMutex
	s  *skipmap.Uint64Map[[]byte]
}

var _ ring.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		s: skipmap.NewUint64[[]byte](),
	}
}

func (m *Store) Get(key uint64) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.s.Load(key)
}

func (m *Store) Set(key uint64, value []byte) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.s.Load(key)
	m.s.Store(key, value)
	return prev, ok
}

func (m *Store) Delete(key uint64) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.s.LoadAndDelete(key)
}

func (m *Store) Scan(match func(key uint64) bool) []*protocol.KeyValueEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]*protocol.KeyValueEntry, 0)
	m.s.Range(func(key uint64, value []byte) bool {
		if match(key) {
			entries = append(entries, &protocol.KeyValueEntry{
				Key:   key,
				Value: value,
			})
		}
		return true
	})
	return entries
}

func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.s.Len()
}
