package rtt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHopLatencyWindow(t *testing.T) {
	as := require.New(t)

	h := NewHopLatency(3)
	as.Nil(h.Window(1, time.Minute))

	for _, v := range []time.Duration{time.Millisecond, time.Millisecond * 2, time.Millisecond * 3, time.Millisecond * 4} {
		h.Observe(1, v)
	}
	h.Observe(1, -time.Millisecond)

	s := h.Window(1, time.Minute)
	as.NotNil(s)
	// oldest sample was overwritten
	as.Equal(3, s.Samples)
	as.Equal(time.Millisecond*2, s.Min)
	as.Equal(time.Millisecond*3, s.Average)
	as.Equal(time.Millisecond*4, s.P95)
	as.Equal(time.Millisecond*4, s.Max)
	as.False(s.Until.Before(s.Since))
	as.Contains(s.String(), "min/avg/p95/max")

	// other neighbors are tracked separately
	as.Nil(h.Window(2, time.Minute))

	h.Forget(1)
	as.Nil(h.Window(1, time.Minute))
}

func TestHopLatencySingleSample(t *testing.T) {
	as := require.New(t)

	h := NewHopLatency(0)
	h.Observe(7, time.Second)
	h.Observe(7, time.Millisecond)

	s := h.Window(7, time.Minute)
	as.NotNil(s)
	as.Equal(1, s.Samples)
	as.Equal(time.Millisecond, s.P95)
}

func TestHopLatencyExpiry(t *testing.T) {
	as := require.New(t)

	h := NewHopLatency(4)
	h.Observe(3, time.Millisecond)

	time.Sleep(time.Millisecond * 20)
	as.Nil(h.Window(3, time.Millisecond*5))
	as.NotNil(h.Window(3, time.Minute))
}
