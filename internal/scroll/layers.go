package scroll

import (
	"fmt"
	"sort"
)

// Property is the visual transform a layer drives.
type Property string

const (
	TranslateY Property = "y"
	Scale      Property = "scale"
	Opacity    Property = "opacity"
)

// Layer maps section progress to one transform of one element.
type Layer struct {
	Name     string
	Property Property
	Range    Range
	// Spring smooths the value when set.
	Spring *SpringConfig
}

// Section is the parallax table for one page section.
type Section struct {
	Name   string
	Offset Offset
	Layers []Layer
}

// Value is a resolved layer transform.
type Value struct {
	Layer    string   `json:"layer"`
	Property Property `json:"property"`
	Value    float64  `json:"value"`
}

// Resolve maps progress through every layer without smoothing.
func (s Section) Resolve(progress float64) []Value {
	out := make([]Value, len(s.Layers))
	for i, l := range s.Layers {
		out[i] = Value{Layer: l.Name, Property: l.Property, Value: l.Range.Map(progress)}
	}
	return out
}

func linear(to float64) Range { return MustRange([]float64{0, 1}, []float64{0, to}) }

func shrink(to float64) Range { return MustRange([]float64{0, 1}, []float64{1, to}) }

var aboutSpring = &SpringConfig{Stiffness: 100, Damping: 30}

// Sections holds the page's parallax tables by name.
var Sections = map[string]Section{
	"hero": {
		Name:   "hero",
		Offset: StartStartEndStart,
		Layers: []Layer{
			{Name: "background", Property: TranslateY, Range: linear(200)},
			{Name: "content", Property: TranslateY, Range: linear(-100)},
			{Name: "title", Property: TranslateY, Range: linear(-50)},
			{Name: "subtitle", Property: TranslateY, Range: linear(-40)},
			{Name: "buttons", Property: TranslateY, Range: linear(-20)},
		},
	},
	"about": {
		Name:   "about",
		Offset: StartStartEndStart,
		Layers: []Layer{
			{Name: "window-controls", Property: TranslateY, Range: linear(-50), Spring: aboutSpring},
			{Name: "window-controls", Property: Scale, Range: shrink(0.98), Spring: aboutSpring},
			{Name: "content", Property: TranslateY, Range: linear(-30), Spring: aboutSpring},
			{Name: "content", Property: Scale, Range: shrink(0.97), Spring: aboutSpring},
			{Name: "line-1", Property: TranslateY, Range: linear(-10), Spring: aboutSpring},
			{Name: "line-2", Property: TranslateY, Range: linear(-15), Spring: aboutSpring},
			{Name: "line-3", Property: TranslateY, Range: linear(-20), Spring: aboutSpring},
			{Name: "skills", Property: TranslateY, Range: linear(-25), Spring: aboutSpring},
			{Name: "skills", Property: Scale, Range: shrink(0.96), Spring: aboutSpring},
			{Name: "education", Property: TranslateY, Range: linear(-35), Spring: aboutSpring},
			{Name: "education", Property: Scale, Range: shrink(0.95), Spring: aboutSpring},
			{Name: "download", Property: TranslateY, Range: linear(-40), Spring: aboutSpring},
			{Name: "download", Property: Scale, Range: shrink(0.94), Spring: aboutSpring},
		},
	},
	"projects": {
		Name:   "projects",
		Offset: StartStartEndStart,
		Layers: []Layer{
			{Name: "header", Property: TranslateY, Range: linear(-50)},
			{Name: "grid", Property: TranslateY, Range: linear(-30)},
		},
	},
	"contact": {
		Name:   "contact",
		Offset: StartEndEndStart,
		Layers: []Layer{
			{Name: "form", Property: TranslateY, Range: MustRange([]float64{0, 1}, []float64{100, -100})},
			{Name: "form", Property: Opacity, Range: MustRange([]float64{0, 0.2, 0.8, 1}, []float64{0, 1, 1, 0})},
			{Name: "backdrop-1", Property: TranslateY, Range: linear(-100)},
			{Name: "backdrop-2", Property: TranslateY, Range: linear(100)},
		},
	},
}

// LookupSection returns the parallax table for name.
func LookupSection(name string) (Section, error) {
	s, ok := Sections[name]
	if !ok {
		return Section{}, fmt.Errorf("unknown parallax section %q", name)
	}
	return s, nil
}

// SectionNames lists the parallax sections in stable order.
func SectionNames() []string {
	names := make([]string, 0, len(Sections))
	for n := range Sections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parallax tracks one section's layers frame by frame, smoothing the ones
// that carry a spring.
type Parallax struct {
	section Section
	springs []*Spring
}

// NewParallax prepares per-layer springs for s at fps.
func NewParallax(s Section, fps int) *Parallax {
	p := &Parallax{section: s, springs: make([]*Spring, len(s.Layers))}
	for i, l := range s.Layers {
		if l.Spring != nil {
			p.springs[i] = NewSpring(*l.Spring, fps)
		}
	}
	return p
}

// Update advances one frame towards the values for progress.
func (p *Parallax) Update(progress float64) []Value {
	vals := p.section.Resolve(progress)
	for i := range vals {
		if sp := p.springs[i]; sp != nil {
			vals[i].Value = sp.Update(vals[i].Value)
		}
	}
	return vals
}

// Section returns the table p was built from.
func (p *Parallax) Section() Section { return p.section }
