package animation

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/canvas"
	"github.com/Zachkp/portfolio/internal/particle"
)

// State is the lifecycle of a Driver.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyMounted = errors.New("animation: driver already mounted")
	ErrStopped        = errors.New("animation: driver stopped")
)

// Driver owns one particle field and keeps it moving on a surface: one
// physics step and one render per scheduled frame.
type Driver struct {
	mu       sync.Mutex
	state    State
	field    *particle.Field
	surface  canvas.Surface
	renderer canvas.Renderer
	sched    Scheduler
	scroll   particle.ScrollSource
	handle   Handle
	frames   uint64
	skip     uint64
	logger   *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithScroll sets where bouncing particles read the page scroll from.
func WithScroll(s particle.ScrollSource) Option {
	return func(d *Driver) { d.scroll = s }
}

// WithRand seeds the particle field.
func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) { d.field = particle.NewField(d.field.Variant(), rng) }
}

// WithRenderer replaces the default renderer.
func WithRenderer(r canvas.Renderer) Option {
	return func(d *Driver) { d.renderer = r }
}

// WithSkipRender runs physics without drawing for the first n frames.
func WithSkipRender(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.skip = uint64(n)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// NewDriver creates an idle driver for variant v drawing onto surface.
func NewDriver(v particle.Variant, surface canvas.Surface, sched Scheduler, opts ...Option) *Driver {
	d := &Driver{
		field:   particle.NewField(v, nil),
		surface: surface,
		sched:   sched,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(zap.String("section", v.Name))
	return d
}

// Mount sizes the surface, seeds the field and starts the frame loop.
func (d *Driver) Mount(w, h int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Running:
		return ErrAlreadyMounted
	case Stopped:
		return ErrStopped
	}
	d.reset(w, h)
	d.state = Running
	d.handle = d.sched.RequestFrame(d.frame)
	d.logger.Debug("Animation mounted", zap.Int("width", w), zap.Int("height", h), zap.Int("particles", d.field.Len()))
	return nil
}

// Resize replaces the particle set for a new surface size. The lifecycle
// state does not change.
func (d *Driver) Resize(w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return
	}
	d.reset(w, h)
	d.logger.Debug("Animation resized", zap.Int("width", w), zap.Int("height", h), zap.Int("particles", d.field.Len()))
}

// Unmount cancels the pending frame. No step runs afterwards.
func (d *Driver) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return
	}
	if d.handle != 0 {
		d.sched.CancelFrame(d.handle)
		d.handle = 0
	}
	d.state = Stopped
	d.logger.Debug("Animation unmounted", zap.Uint64("frames", d.frames))
}

func (d *Driver) reset(w, h int) {
	d.surface.Resize(w, h)
	d.field.Reset(w, h)
}

func (d *Driver) frame(time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return
	}
	d.field.Step(d.scroll)
	if d.frames >= d.skip {
		d.renderer.Render(d.surface, d.field.Particles(), d.field.Variant())
	}
	d.frames++
	d.handle = d.sched.RequestFrame(d.frame)
}

// State returns the lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frames returns how many frames have run.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Particles returns a copy of the current particle set.
func (d *Driver) Particles() []particle.Particle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.field.Snapshot()
}
