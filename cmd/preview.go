package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/animation"
	"github.com/Zachkp/portfolio/internal/canvas"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/observability"
	"github.com/Zachkp/portfolio/internal/particle"
	"github.com/Zachkp/portfolio/internal/scroll"
)

// pageScreens is how many viewports tall the simulated page is.
const pageScreens = 4

func newPreviewCmd() *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the particle backgrounds in the terminal",
		Long: `Runs a section's particle background in the terminal.
Arrow keys and PgUp/PgDn scroll the simulated page, Tab switches section,
q or Esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if _, err := particle.Lookup(section); err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			return runPreview(cmd.Context(), screen, cfg.Animation, section, observability.GetLogger())
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", "hero", "section to preview (hero, about, projects)")
	return cmd
}

// preview drives one section at a time on a terminal screen.
type preview struct {
	screen  tcell.Screen
	surface *statusSurface
	ticker  *animation.Ticker
	tracker *scroll.Tracker
	logger  *zap.Logger

	sections []string

	mu       sync.Mutex
	current  int
	driver   *animation.Driver
	viewport float64
	// parallax smooths the current section's layers against the
	// simulated scroll, one Update per rendered frame.
	parallax *scroll.Parallax
	fps      int
}

// runPreview blocks until the user quits or ctx is cancelled.
func runPreview(ctx context.Context, screen tcell.Screen, cfg config.AnimationConfig, section string, logger *zap.Logger) error {
	p := &preview{
		screen:   screen,
		ticker:   animation.NewTicker(cfg.FPS),
		tracker:  scroll.NewTracker(cfg.QuietWindow),
		logger:   logger.Named("preview"),
		sections: particle.Sections(),
		fps:      cfg.FPS,
	}
	defer p.tracker.Close()
	unsubscribe := p.tracker.Subscribe(func(st scroll.PageState) {
		p.logger.Debug("Scroll settled", zap.Float64("scrollY", st.ScrollY), zap.Float64("percent", st.Percent))
	})
	defer unsubscribe()
	p.surface = &statusSurface{Terminal: canvas.NewTerminal(screen, canvas.Backdrop), p: p}

	for i, s := range p.sections {
		if s == section {
			p.current = i
		}
	}
	if err := p.mount(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.ticker.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		return p.events(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		p.unmount()
		// Wake PollEvent so the event loop can observe ctx.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (p *preview) size() (int, int) {
	return canvas.SurfaceSize(p.screen.Size())
}

func (p *preview) mount() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, err := particle.Lookup(p.sections[p.current])
	if err != nil {
		return err
	}
	w, h := p.size()
	p.viewport = float64(h)
	p.tracker.OnResize(p.viewport*pageScreens, p.viewport)
	p.parallax = nil
	if sec, err := scroll.LookupSection(v.Name); err == nil {
		p.parallax = scroll.NewParallax(sec, p.fps)
	}
	p.driver = animation.NewDriver(v, p.surface, p.ticker,
		animation.WithScroll(p.tracker),
		animation.WithLogger(p.logger),
	)
	return p.driver.Mount(w, h)
}

func (p *preview) unmount() {
	p.mu.Lock()
	d := p.driver
	p.mu.Unlock()
	if d != nil {
		d.Unmount()
	}
}

func (p *preview) next() {
	p.mu.Lock()
	p.current = (p.current + 1) % len(p.sections)
	p.mu.Unlock()
}

func (p *preview) resize() {
	w, h := p.size()
	p.mu.Lock()
	p.viewport = float64(h)
	d := p.driver
	p.mu.Unlock()
	p.tracker.OnResize(float64(h)*pageScreens, float64(h))
	d.Resize(w, h)
}

func (p *preview) viewportHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport
}

func (p *preview) events(ctx context.Context) error {
	for {
		ev := p.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if quit := p.key(ev); quit {
				return nil
			}
		case *tcell.EventResize:
			p.screen.Sync()
			p.resize()
		}
	}
}

// key handles one key press and reports whether the preview should exit.
func (p *preview) key(ev *tcell.EventKey) bool {
	step := canvas.CellHeight * 3
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.scrollBy(-step)
	case tcell.KeyDown:
		p.scrollBy(step)
	case tcell.KeyPgUp:
		p.scrollBy(-p.viewportHeight())
	case tcell.KeyPgDn:
		p.scrollBy(p.viewportHeight())
	case tcell.KeyHome:
		p.scrollTo(0)
	case tcell.KeyTab:
		p.unmount()
		p.next()
		if err := p.mount(); err != nil {
			p.logger.Error("Failed to switch section", zap.Error(err))
			return true
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'j':
			p.scrollBy(step)
		case 'k':
			p.scrollBy(-step)
		}
	}
	return false
}

func (p *preview) scrollBy(dy float64) { p.scrollTo(p.tracker.ScrollY() + dy) }

func (p *preview) scrollTo(y float64) {
	limit := p.viewportHeight() * (pageScreens - 1)
	if y < 0 {
		y = 0
	}
	if y > limit {
		y = limit
	}
	p.tracker.OnScroll(y)
}

// layer advances the section's parallax one frame and returns its lead
// layer. The simulated page's scroll range is the section's extent.
func (p *preview) layer() (scroll.Value, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.parallax == nil {
		return scroll.Value{}, false
	}
	g := scroll.Geometry{Height: p.viewport * (pageScreens - 1), Viewport: p.viewport}
	vals := p.parallax.Update(scroll.SectionProgress(g, p.parallax.Section().Offset, p.tracker.ScrollY()))
	if len(vals) == 0 {
		return scroll.Value{}, false
	}
	return vals[0], true
}

func (p *preview) status() string {
	p.mu.Lock()
	name := p.sections[p.current]
	p.mu.Unlock()
	st := p.tracker.State()
	line := fmt.Sprintf(" %s  scroll %3.0f%%", name, st.Percent)
	if v, ok := p.layer(); ok {
		line += fmt.Sprintf("  %s %s %+.1f", v.Layer, v.Property, v.Value)
	}
	line += "  [tab] section  [q] quit "
	if st.ShowScrollTop {
		line += " [home] top "
	}
	return line
}

// statusSurface draws the preview's status line over each frame before it
// is shown.
type statusSurface struct {
	*canvas.Terminal
	p *preview
}

func (s *statusSurface) Present() {
	_, rows := s.p.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range s.p.status() {
		s.p.screen.SetContent(x, rows-1, r, nil, style)
		x++
	}
	s.Terminal.Present()
}

