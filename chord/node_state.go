package chord

import (
	"runtime"
	"sync/atomic"

	"go.miragespace.co/chordring/spec/ring"

	"github.com/zhangyunhao116/skipmap"
)

// nodeState packs a transition counter and the current state into a single
// word, so every transition is recorded in history exactly once.
type nodeState struct {
	state   atomic.Uint64
	history *skipmap.Uint64Map[ring.State]
}

func newNodeState(initial ring.State) *nodeState {
	s := &nodeState{
		history: skipmap.NewUint64[ring.State](),
	}
	s.state.Store(uint64(initial))
	s.history.Store(0, initial)
	return s
}

func (s *nodeState) Transition(exp ring.State, nxt ring.State) (ring.State, bool) {
	curr := s.state.Load()
	currIndex := curr >> 4
	prev := (currIndex << 4) | uint64(exp)
	nextIndex := currIndex + 1
	next := (nextIndex << 4) | uint64(nxt)
	if s.state.CompareAndSwap(prev, next) {
		s.history.Store(nextIndex, nxt)
		return nxt, true
	}
	return ring.State(curr & 0b1111), false
}

func (s *nodeState) Set(val ring.State) {
	for {
		if _, ok := s.Transition(s.Get(), val); ok {
			break
		}
		runtime.Gosched()
	}
}

func (s *nodeState) Get() ring.State {
	return ring.State(s.state.Load() & 0b1111)
}

func (s *nodeState) History() []ring.State {
	h := make([]ring.State, 0)
	s.history.Range(func(_ uint64, state ring.State) bool {
		h = append(h, state)
		return true
	})
	return h
}
