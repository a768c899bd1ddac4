package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/animation"
	"github.com/Zachkp/portfolio/internal/canvas"
	"github.com/Zachkp/portfolio/internal/particle"
	"github.com/Zachkp/portfolio/internal/scroll"
)

type backgroundRequest struct {
	variant particle.Variant
	width   int
	height  int
	frames  int
	seed    int64
	scrollY float64
}

type particleJSON struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
}

type backgroundJSON struct {
	Section   string         `json:"section"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Frames    int            `json:"frames"`
	Seed      int64          `json:"seed"`
	Count     int            `json:"count"`
	Particles []particleJSON `json:"particles"`
}

var errBadParam = errors.New("bad parameter")

func (s *Server) parseBackground(c *gin.Context, section string, defaultFrames int) (backgroundRequest, error) {
	v, err := particle.Lookup(section)
	if err != nil {
		return backgroundRequest{}, err
	}
	a := s.cfg.Animation
	req := backgroundRequest{variant: v}
	if req.width, err = intParam(c, "w", 1280, 1, a.MaxWidth); err != nil {
		return req, err
	}
	if req.height, err = intParam(c, "h", 720, 1, a.MaxHeight); err != nil {
		return req, err
	}
	if req.frames, err = intParam(c, "frames", defaultFrames, 0, a.MaxFrames); err != nil {
		return req, err
	}
	seed, err := strconv.ParseInt(c.DefaultQuery("seed", "1"), 10, 64)
	if err != nil {
		return req, fmt.Errorf("%w: seed", errBadParam)
	}
	req.seed = seed
	if req.scrollY, err = floatParam(c, "scroll", 0); err != nil {
		return req, err
	}
	return req, nil
}

func simulate(req backgroundRequest, surface canvas.Surface) ([]particle.Particle, error) {
	return animation.Snapshot(req.variant, surface, req.width, req.height, req.frames,
		animation.WithRand(rand.New(rand.NewSource(req.seed))),
		animation.WithScroll(particle.StaticScroll(req.scrollY)),
	)
}

// backgroundJSON returns a section's particle field after N frames.
func (s *Server) backgroundJSON(c *gin.Context) {
	req, err := s.parseBackground(c, c.Param("section"), 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ps, err := simulate(req, canvas.NewRecorder(req.width, req.height))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := backgroundJSON{
		Section:   req.variant.Name,
		Width:     req.width,
		Height:    req.height,
		Frames:    req.frames,
		Seed:      req.seed,
		Count:     len(ps),
		Particles: make([]particleJSON, len(ps)),
	}
	for i, p := range ps {
		out.Particles[i] = particleJSON{X: p.X, Y: p.Y, Radius: p.Radius, Opacity: p.Opacity}
	}
	c.JSON(http.StatusOK, out)
}

// backgroundPNG renders a section's particle field to /backgrounds/<section>.png.
func (s *Server) backgroundPNG(c *gin.Context) {
	section, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}
	req, err := s.parseBackground(c, section, 1)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if req.frames == 0 {
		req.frames = 1
	}
	raster := canvas.NewRaster(req.width, req.height, canvas.Backdrop)
	if _, err := simulate(req, raster); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

type parallaxJSON struct {
	Section  string         `json:"section"`
	Progress float64        `json:"progress"`
	Frames   int            `json:"frames,omitempty"`
	Values   []scroll.Value `json:"values"`
}

// parallax resolves a section's layer transforms either for an explicit
// progress or for a scroll offset plus section geometry. With frames set,
// spring layers start settled at progress "from" and are stepped that many
// frames towards the target.
func (s *Server) parallax(c *gin.Context) {
	sec, err := scroll.LookupSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var progress float64
	if _, ok := c.GetQuery("progress"); ok {
		if progress, err = floatParam(c, "progress", 0); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		progress = scroll.Progress(0, 1, progress)
	} else {
		var g scroll.Geometry
		var y float64
		for _, p := range []struct {
			name string
			dst  *float64
		}{{"scroll", &y}, {"top", &g.Top}, {"height", &g.Height}, {"viewport", &g.Viewport}} {
			if *p.dst, err = floatParam(c, p.name, 0); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		progress = scroll.SectionProgress(g, sec.Offset, y)
	}

	out := parallaxJSON{Section: sec.Name, Progress: progress, Values: sec.Resolve(progress)}
	if _, ok := c.GetQuery("frames"); ok {
		if out.Frames, err = intParam(c, "frames", 0, 0, s.cfg.Animation.MaxFrames); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from, err := floatParam(c, "from", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		px := scroll.NewParallax(sec, s.cfg.Animation.FPS)
		out.Values = px.Update(scroll.Progress(0, 1, from))
		for i := 0; i < out.Frames; i++ {
			out.Values = px.Update(progress)
		}
	}
	c.JSON(http.StatusOK, out)
}

func intParam(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s must be an integer in [%d, %d]", errBadParam, name, lo, hi)
	}
	return v, nil
}

func floatParam(c *gin.Context, name string, def float64) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", errBadParam, name)
	}
	return v, nil
}
