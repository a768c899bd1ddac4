// Package animation runs particle fields frame by frame on a scheduler, the
// way a browser runs requestAnimationFrame callbacks.
package animation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// FrameFunc is called once for a requested frame.
type FrameFunc func(now time.Time)

// Scheduler runs frame callbacks one at a time. A callback runs at most once;
// to keep animating it must request the next frame itself.
type Scheduler interface {
	RequestFrame(fn FrameFunc) Handle
	CancelFrame(h Handle)
}

// queue is the pending-callback table shared by the schedulers.
type queue struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]FrameFunc
}

func (q *queue) request(fn FrameFunc) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[Handle]FrameFunc)
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *queue) cancel(h Handle) {
	q.mu.Lock()
	delete(q.pending, h)
	q.mu.Unlock()
}

// drain takes every pending callback in request order. Callbacks requested
// while the batch runs wait for the next frame.
func (q *queue) drain() []FrameFunc {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	hs := make([]Handle, 0, len(q.pending))
	for h := range q.pending {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	fns := make([]FrameFunc, len(hs))
	for i, h := range hs {
		fns[i] = q.pending[h]
		delete(q.pending, h)
	}
	return fns
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Manual is a Scheduler advanced explicitly by Tick. Hosts that own their
// own loop (ebiten, request handlers, tests) use it.
type Manual struct {
	q   queue
	now func() time.Time
}

// NewManual returns a Manual scheduler using the wall clock.
func NewManual() *Manual {
	return &Manual{now: time.Now}
}

func (m *Manual) RequestFrame(fn FrameFunc) Handle { return m.q.request(fn) }

func (m *Manual) CancelFrame(h Handle) { m.q.cancel(h) }

// Tick runs every callback pending at the time of the call and reports how
// many ran.
func (m *Manual) Tick() int {
	fns := m.q.drain()
	now := m.now()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// Pending reports how many callbacks wait for the next Tick.
func (m *Manual) Pending() int { return m.q.len() }

// Ticker is a Scheduler that fires pending callbacks at a fixed rate from a
// single goroutine.
type Ticker struct {
	q        queue
	interval time.Duration
}

// DefaultFPS matches a typical display refresh rate.
const DefaultFPS = 60

// NewTicker returns a Ticker firing fps times per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Ticker{interval: time.Second / time.Duration(fps)}
}

func (t *Ticker) RequestFrame(fn FrameFunc) Handle { return t.q.request(fn) }

func (t *Ticker) CancelFrame(h Handle) { t.q.cancel(h) }

// Run fires frames until ctx is done. Callbacks never run concurrently.
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tk.C:
			for _, fn := range t.q.drain() {
				fn(now)
			}
		}
	}
}
