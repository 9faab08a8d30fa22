package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and keeps the most recent frames it produced in
// a ring buffer, so the analyser can look at what is currently audible.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	ring   [][2]float64
	next   int
	filled bool
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		ring:   make([][2]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.ring[t.next] = samples[i]
			t.next++
			if t.next == len(t.ring) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Mono writes the latest len(dst) frames into dst as a mono mix, oldest
// first. Slots older than anything recorded are zero.
func (t *Tap) Mono(dst []float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := len(t.ring)
	avail := t.next
	if t.filled {
		avail = size
	}

	idx := t.next - 1
	for i := len(dst) - 1; i >= 0; i-- {
		if avail == 0 {
			dst[i] = 0
			continue
		}
		if idx < 0 {
			idx = size - 1
		}
		frame := t.ring[idx]
		dst[i] = (frame[0] + frame[1]) * 0.5
		idx--
		avail--
	}
}
