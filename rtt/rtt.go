package rtt

import (
	"sync"
	"time"

	"go.miragespace.co/chordring/spec/rtt"
	"go.miragespace.co/chordring/util"

	"github.com/montanaflynn/stats"
	"github.com/zhangyunhao116/skipmap"
)

type sample struct {
	at      time.Time
	latency time.Duration
}

// window is a fixed-size ring of samples; head is the next write position.
type window struct {
	mu      sync.Mutex
	samples []sample
	head    int
	full    bool
}

func (w *window) add(s sample) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples[w.head] = s
	w.head = (w.head + 1) % len(w.samples)
	if w.head == 0 {
		w.full = true
	}
}

// recent returns samples no older than past, oldest first.
func (w *window) recent(past time.Duration) []sample {
	w.mu.Lock()
	defer w.mu.Unlock()

	ordered := w.samples[:w.head]
	if w.full {
		ordered = append(append([]sample{}, w.samples[w.head:]...), w.samples[:w.head]...)
	}
	cutoff := time.Now().Add(-past)
	out := make([]sample, 0, len(ordered))
	for _, s := range ordered {
		if !s.at.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

// HopLatency keeps the last few forwarding latencies for every neighbor a node
// has forwarded to.
type HopLatency struct {
	hops *skipmap.Uint64Map[*window]
	size int
}

var _ rtt.HopRecorder = (*HopLatency)(nil)

func NewHopLatency(size int) *HopLatency {
	if size < 1 {
		size = 1
	}
	return &HopLatency{
		hops: skipmap.NewUint64[*window](),
		size: size,
	}
}

func (h *HopLatency) Observe(node uint64, latency time.Duration) {
	if latency < 0 {
		return
	}
	w, _ := h.hops.LoadOrStoreLazy(node, func() *window {
		return &window{samples: make([]sample, h.size)}
	})
	w.add(sample{at: time.Now(), latency: latency})
}

func (h *HopLatency) Window(node uint64, past time.Duration) *rtt.Statistics {
	w, ok := h.hops.Load(node)
	if !ok {
		return nil
	}
	samples := w.recent(past)
	if len(samples) == 0 {
		return nil
	}

	data := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		data[i] = float64(s.latency)
	}
	return &rtt.Statistics{
		Since:   samples[0].at,
		Until:   samples[len(samples)-1].at,
		Samples: len(samples),
		Min:     time.Duration(util.Must(stats.Min(data))),
		Average: time.Duration(util.Must(stats.Mean(data))),
		P95:     time.Duration(util.Must(stats.PercentileNearestRank(data, 95))),
		Max:     time.Duration(util.Must(stats.Max(data))),
	}
}

func (h *HopLatency) Forget(node uint64) {
	h.hops.Delete(node)
}
