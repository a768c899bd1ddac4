package scroll

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProgressClampsAndIsMonotonic(t *testing.T) {
	assert.Equal(t, 0.0, Progress(100, 300, -50))
	assert.Equal(t, 0.0, Progress(100, 300, 100))
	assert.Equal(t, 1.0, Progress(100, 300, 300))
	assert.Equal(t, 1.0, Progress(100, 300, 9000))
	assert.Equal(t, 0.5, Progress(100, 300, 200))

	prev := -1.0
	for y := 0.0; y <= 400; y += 0.5 {
		p := Progress(100, 300, y)
		assert.GreaterOrEqual(t, p, prev)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		prev = p
	}
}

func TestProgressDegenerateSection(t *testing.T) {
	assert.Equal(t, 0.0, Progress(200, 200, 200))
	assert.Equal(t, 1.0, Progress(200, 200, 201))
	assert.Equal(t, 0.0, Progress(300, 100, 250))
}

func TestProgressNaNIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Progress(100, 300, math.NaN()))
	assert.Equal(t, 0.0, Progress(math.NaN(), 300, 200))
	assert.Equal(t, 0.0, SectionProgress(Geometry{Top: math.NaN(), Height: 100}, StartStartEndStart, 50))
	assert.Equal(t, 1.0, Progress(100, 300, math.Inf(1)))

	about, err := LookupSection("about")
	require.NoError(t, err)
	for _, v := range about.Resolve(math.NaN()) {
		assert.False(t, math.IsNaN(v.Value), v.Layer)
	}
}

func TestSectionProgressOffsets(t *testing.T) {
	g := Geometry{Top: 1000, Height: 800, Viewport: 600}
	assert.Equal(t, 0.0, SectionProgress(g, StartStartEndStart, 1000))
	assert.Equal(t, 0.5, SectionProgress(g, StartStartEndStart, 1400))
	assert.Equal(t, 1.0, SectionProgress(g, StartStartEndStart, 1800))

	assert.Equal(t, 0.0, SectionProgress(g, StartEndEndStart, 400))
	assert.Equal(t, 0.5, SectionProgress(g, StartEndEndStart, 1100))
	assert.Equal(t, 1.0, SectionProgress(g, StartEndEndStart, 1800))
}

func TestMapRangeLinear(t *testing.T) {
	in, out := []float64{0, 1}, []float64{0, 200}
	for _, tc := range []struct{ p, want float64 }{{0, 0}, {1, 200}, {0.5, 100}, {-1, 0}, {2, 200}} {
		got, err := MapRange(tc.p, in, out)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "progress %v", tc.p)
	}
}

func TestMapRangePiecewise(t *testing.T) {
	r := MustRange([]float64{0, 0.2, 0.8, 1}, []float64{0, 1, 1, 0})
	assert.InDelta(t, 0.0, r.Map(0), 1e-9)
	assert.InDelta(t, 0.5, r.Map(0.1), 1e-9)
	assert.InDelta(t, 1.0, r.Map(0.2), 1e-9)
	assert.InDelta(t, 1.0, r.Map(0.5), 1e-9)
	assert.InDelta(t, 0.5, r.Map(0.9), 1e-9)
	assert.InDelta(t, 0.0, r.Map(1), 1e-9)
	assert.Equal(t, []float64{0, 0.2, 0.8, 1}, r.Inputs())
	assert.Equal(t, []float64{0, 1, 1, 0}, r.Outputs())
}

func TestMapRangeRejectsBadTables(t *testing.T) {
	_, err := MapRange(0.5, []float64{0}, []float64{0})
	assert.ErrorIs(t, err, ErrBadRange)
	_, err = MapRange(0.5, []float64{0, 1}, []float64{0, 1, 2})
	assert.ErrorIs(t, err, ErrBadRange)
	_, err = MapRange(0.5, []float64{0, 0.5, 0.5}, []float64{0, 1, 2})
	assert.ErrorIs(t, err, ErrBadRange)
	assert.Panics(t, func() { MustRange(nil, nil) })
	assert.Equal(t, 0.0, Range{}.Map(0.3))
}

func TestSpringConverges(t *testing.T) {
	cfg := Critical(100)
	assert.InDelta(t, 1.0, cfg.DampingRatio(), 1e-9)
	assert.InDelta(t, 10.0, cfg.AngularFrequency(), 1e-9)

	s := NewSpring(cfg, 60)
	assert.Equal(t, 0.0, s.Update(0))
	var v float64
	for i := 0; i < 120; i++ {
		v = s.Update(-50)
		assert.GreaterOrEqual(t, v, -50.0-1e-6, "critically damped spring does not overshoot")
	}
	assert.InDelta(t, -50, v, 0.01)
	assert.True(t, s.Settled(-50, 0.05))
}

func TestSpringConfigRatio(t *testing.T) {
	cfg := SpringConfig{Stiffness: 100, Damping: 30}
	assert.InDelta(t, 1.5, cfg.DampingRatio(), 1e-9)
	cfg.Mass = 4
	assert.InDelta(t, 5.0, cfg.AngularFrequency(), 1e-9)
	assert.InDelta(t, 0.75, cfg.DampingRatio(), 1e-9)
}

func TestSectionsResolve(t *testing.T) {
	hero, err := LookupSection("hero")
	require.NoError(t, err)
	vals := hero.Resolve(0.5)
	require.Len(t, vals, 5)
	assert.Equal(t, Value{Layer: "background", Property: TranslateY, Value: 100}, vals[0])

	contact, err := LookupSection("contact")
	require.NoError(t, err)
	vals = contact.Resolve(0.1)
	assert.InDelta(t, 80, vals[0].Value, 1e-9)
	assert.InDelta(t, 0.5, vals[1].Value, 1e-9)

	_, err = LookupSection("footer")
	assert.Error(t, err)
	assert.Equal(t, []string{"about", "contact", "hero", "projects"}, SectionNames())
}

func TestParallaxSmoothsSpringLayers(t *testing.T) {
	about, err := LookupSection("about")
	require.NoError(t, err)
	p := NewParallax(about, 60)

	first := p.Update(0)
	assert.Equal(t, 0.0, first[0].Value)
	assert.Equal(t, 1.0, first[1].Value)

	next := p.Update(1)
	assert.Greater(t, next[0].Value, -50.0, "spring lags the target")
	assert.Less(t, next[0].Value, 0.0)

	var last []Value
	for i := 0; i < 600; i++ {
		last = p.Update(1)
	}
	assert.InDelta(t, -50, last[0].Value, 0.01)
	assert.InDelta(t, 0.98, last[1].Value, 0.001)
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()
	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 10; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(2 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(10), last.Load())
}

func TestDebouncerStopDropsPending(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Stop()
	d.Trigger(func() { called.Store(true) })
	time.Sleep(30 * time.Millisecond)
	assert.False(t, called.Load())
}

func TestTrackerPublishesAfterQuietWindow(t *testing.T) {
	tr := NewTracker(15 * time.Millisecond)
	defer tr.Close()

	var mu sync.Mutex
	var got []PageState
	unsub := tr.Subscribe(func(s PageState) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})
	defer unsub()

	tr.OnResize(3000, 1000)
	for y := 0.0; y <= 1000; y += 100 {
		tr.OnScroll(y)
	}
	assert.Equal(t, 1000.0, tr.ScrollY(), "raw offset is visible immediately")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	st := tr.State()
	assert.Equal(t, 1000.0, st.ScrollY)
	assert.InDelta(t, 50.0, st.Percent, 1e-9)
	assert.True(t, st.ShowScrollTop)
}

func TestTrackerCloseCancelsPublish(t *testing.T) {
	tr := NewTracker(10 * time.Millisecond)
	var called atomic.Bool
	tr.Subscribe(func(PageState) { called.Store(true) })
	tr.OnScroll(200)
	tr.Close()
	time.Sleep(30 * time.Millisecond)
	assert.False(t, called.Load())
	assert.Equal(t, PageState{}, tr.State())
}

func TestTrackerNoDocumentHeight(t *testing.T) {
	tr := NewTracker(5 * time.Millisecond)
	defer tr.Close()
	tr.OnScroll(300)
	require.Eventually(t, func() bool { return tr.State().ScrollY == 300 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, 0.0, tr.State().Percent)
	assert.False(t, tr.State().ShowScrollTop)
}
