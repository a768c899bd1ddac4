package particle

import (
	"fmt"
	"sort"
)

// Hero is the foreground field of the landing section: denser, larger
// particles that bounce and are joined into a constellation.
var Hero = Variant{
	Name:          "hero",
	Density:       10000,
	Policy:        Bounce,
	Radius:        Span{1, 4},
	Speed:         Span{0.2, 1.0},
	Opacity:       Span{0.1, 0.4},
	Dir:           Span{-1, 1},
	Parallax:      Span{0.2, 1.0},
	Tint:          Indigo,
	Glow:          15,
	Constellation: true,
}

// About is the drifting backdrop of the about/skills panel.
var About = Variant{
	Name:       "about",
	Density:    20000,
	Policy:     Drift,
	Radius:     Span{1, 3},
	Speed:      Span{1, 3},
	Opacity:    Span{0.1, 0.4},
	ResetDepth: 100,
	Tint:       Indigo,
	Glow:       10,
}

// Projects is the sparse, slow backdrop of the project gallery.
var Projects = Variant{
	Name:       "projects",
	Density:    40000,
	Policy:     Drift,
	Radius:     Span{0.5, 2},
	Speed:      Span{0.5, 1.5},
	Opacity:    Span{0.1, 0.3},
	ResetDepth: 50,
	Tint:       Indigo,
}

var variants = map[string]Variant{
	Hero.Name:     Hero,
	About.Name:    About,
	Projects.Name: Projects,
}

// Lookup returns the built-in variant for a section name.
func Lookup(section string) (Variant, error) {
	v, ok := variants[section]
	if !ok {
		return Variant{}, fmt.Errorf("unknown section %q", section)
	}
	return v, nil
}

// Sections lists the built-in section names in stable order.
func Sections() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
