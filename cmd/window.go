//go:build ebiten

package cmd

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/animation"
	"github.com/Zachkp/portfolio/internal/canvas"
	"github.com/Zachkp/portfolio/internal/observability"
	"github.com/Zachkp/portfolio/internal/particle"
	"github.com/Zachkp/portfolio/internal/scroll"
)

// wheelStep is how far one wheel notch scrolls the simulated page.
const wheelStep = 40

func newWindowCmd() *cobra.Command {
	var (
		section       string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the particle backgrounds in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			g, err := newWindowGame(section, width, height, scroll.NewTracker(cfg.Animation.QuietWindow), observability.GetLogger())
			if err != nil {
				return err
			}
			defer g.close()

			ebiten.SetWindowTitle("portfolio backgrounds")
			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			ebiten.SetTPS(cfg.Animation.FPS)
			if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&section, "section", "s", "hero", "section to show (hero, about, projects)")
	cmd.Flags().IntVar(&width, "width", 1280, "window width")
	cmd.Flags().IntVar(&height, "height", 720, "window height")
	return cmd
}

// windowGame runs one driver per section on ebiten's frame loop.
type windowGame struct {
	sched    *animation.Manual
	surface  *canvas.Window
	tracker  *scroll.Tracker
	logger   *zap.Logger
	sections []string
	current  int
	driver   *animation.Driver
	w, h     int
}

func newWindowGame(section string, w, h int, tracker *scroll.Tracker, logger *zap.Logger) (*windowGame, error) {
	g := &windowGame{
		sched:    animation.NewManual(),
		surface:  canvas.NewWindow(w, h, canvas.Backdrop),
		tracker:  tracker,
		logger:   logger.Named("window"),
		sections: particle.Sections(),
		w:        w,
		h:        h,
	}
	for i, s := range g.sections {
		if s == section {
			g.current = i
		}
	}
	return g, g.mount()
}

func (g *windowGame) mount() error {
	v, err := particle.Lookup(g.sections[g.current])
	if err != nil {
		return err
	}
	g.tracker.OnResize(float64(g.h*pageScreens), float64(g.h))
	g.driver = animation.NewDriver(v, g.surface, g.sched,
		animation.WithScroll(g.tracker),
		animation.WithLogger(g.logger),
	)
	return g.driver.Mount(g.w, g.h)
}

func (g *windowGame) close() {
	g.driver.Unmount()
	g.tracker.Close()
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.driver.Unmount()
		g.current = (g.current + 1) % len(g.sections)
		if err := g.mount(); err != nil {
			return err
		}
	}

	y := g.tracker.ScrollY()
	_, dy := ebiten.Wheel()
	y -= dy * wheelStep
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		y += wheelStep / 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		y -= wheelStep / 4
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		y = 0
	}
	limit := float64(g.h * (pageScreens - 1))
	if y < 0 {
		y = 0
	}
	if y > limit {
		y = limit
	}
	if y != g.tracker.ScrollY() {
		g.tracker.OnScroll(y)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.surface.Target = screen
	g.sched.Tick()
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.tracker.OnResize(float64(g.h*pageScreens), float64(g.h))
		g.driver.Resize(g.w, g.h)
	}
	return g.w, g.h
}
