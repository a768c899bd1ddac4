package scroll

import (
	"sync"
	"time"
)

// DefaultQuietWindow is how long scrolling must pause before state is
// republished.
const DefaultQuietWindow = 50 * time.Millisecond

// ScrollTopThreshold is the offset past which the back-to-top button shows.
const ScrollTopThreshold = 500

// Debouncer runs the most recent function once triggers stop arriving for a
// full window.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	closed bool
}

// NewDebouncer returns a Debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultQuietWindow
	}
	return &Debouncer{window: window}
}

// Trigger (re)starts the window; fn replaces any function still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop drops any pending function and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// PageState is the debounced page-level scroll state.
type PageState struct {
	ScrollY float64 `json:"scrollY"`
	// Percent is how far through the whole document, 0-100.
	Percent       float64 `json:"percent"`
	ShowScrollTop bool    `json:"showScrollTop"`
}

// Tracker receives raw scroll and resize notifications and publishes
// PageState once scrolling settles.
type Tracker struct {
	mu           sync.Mutex
	deb          *Debouncer
	raw          float64
	scrollHeight float64
	clientHeight float64
	state        PageState
	subs         map[int]func(PageState)
	nextSub      int
}

// NewTracker returns a Tracker with the given quiet window.
func NewTracker(window time.Duration) *Tracker {
	return &Tracker{deb: NewDebouncer(window), subs: make(map[int]func(PageState))}
}

// OnScroll records a raw scroll offset.
func (t *Tracker) OnScroll(scrollY float64) {
	t.mu.Lock()
	t.raw = scrollY
	t.mu.Unlock()
	t.deb.Trigger(t.publish)
}

// OnResize records new document and viewport heights.
func (t *Tracker) OnResize(scrollHeight, clientHeight float64) {
	t.mu.Lock()
	t.scrollHeight, t.clientHeight = scrollHeight, clientHeight
	t.mu.Unlock()
	t.deb.Trigger(t.publish)
}

// ScrollY returns the latest raw offset, ahead of debouncing. It lets the
// tracker serve as a particle.ScrollSource.
func (t *Tracker) ScrollY() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raw
}

// State returns the last published state.
func (t *Tracker) State() PageState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe registers fn for every published state and returns a function
// that removes it.
func (t *Tracker) Subscribe(fn func(PageState)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Close cancels any pending publish and detaches subscribers.
func (t *Tracker) Close() {
	t.deb.Stop()
	t.mu.Lock()
	t.subs = make(map[int]func(PageState))
	t.mu.Unlock()
}

func (t *Tracker) publish() {
	t.mu.Lock()
	st := PageState{ScrollY: t.raw, ShowScrollTop: t.raw > ScrollTopThreshold}
	if total := t.scrollHeight - t.clientHeight; total > 0 {
		st.Percent = clamp01(t.raw/total) * 100
	}
	t.state = st
	subs := make([]func(PageState), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}
