package rtt

import (
	"fmt"
	"time"
)

// HopRecorder tracks how long forwarded queries take per neighbor, keyed by node id.
type HopRecorder interface {
	Observe(node uint64, latency time.Duration)
	Window(node uint64, past time.Duration) *Statistics
	Forget(node uint64)
}

type Statistics struct {
	Since   time.Time
	Until   time.Time
	Samples int
	Min     time.Duration
	Average time.Duration
	P95     time.Duration
	Max     time.Duration
}

func (s *Statistics) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("min/avg/p95/max = %v/%v/%v/%v (n=%d)", s.Min, s.Average, s.P95, s.Max, s.Samples)
}
