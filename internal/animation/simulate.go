package animation

import (
	"github.com/Zachkp/portfolio/internal/canvas"
	"github.com/Zachkp/portfolio/internal/particle"
)

// Simulate mounts a driver for v on surface, runs exactly frames frames on
// a Manual scheduler and returns the resulting particles. The driver is
// unmounted before returning.
func Simulate(v particle.Variant, surface canvas.Surface, w, h, frames int, opts ...Option) ([]particle.Particle, error) {
	sched := NewManual()
	d := NewDriver(v, surface, sched, opts...)
	if err := d.Mount(w, h); err != nil {
		return nil, err
	}
	defer d.Unmount()
	for i := 0; i < frames; i++ {
		sched.Tick()
	}
	return d.Particles(), nil
}

// Snapshot is Simulate for still images: every frame steps the physics but
// only the last one is drawn.
func Snapshot(v particle.Variant, surface canvas.Surface, w, h, frames int, opts ...Option) ([]particle.Particle, error) {
	opts = append(opts, WithSkipRender(frames-1))
	return Simulate(v, surface, w, h, frames, opts...)
}
