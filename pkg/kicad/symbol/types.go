// Package symbol models a KiCad symbol library entry and reads and writes the
// .kicad_sym form.
package symbol

import (
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
)

type (
	Position = sexp.Position
	Angle    = sexp.Angle
)

// Pin electrical types
const (
	PinInput         = "input"
	PinOutput        = "output"
	PinBidirectional = "bidirectional"
	PinTriState      = "tri_state"
	PinPassive       = "passive"
	PinPowerIn       = "power_in"
	PinPowerOut      = "power_out"
	PinUnspecified   = "unspecified"
)

// Fill types
const (
	FillNone       = "none"
	FillOutline    = "outline"
	FillBackground = "background"
)

// Pin represents a symbol pin
type Pin struct {
	Number     string
	Name       string
	Type       string   // input, output, bidirectional, power_in, passive, unspecified
	Style      string   // line, inverted, clock, inverted_clock
	Position   Position // connection point
	Angle      Angle    // 0, 90, 180 or 270
	Length     float64
	Hidden     bool
	NameHidden bool
	NumHidden  bool
}

// Rectangle is a box given by two opposite corners.
type Rectangle struct {
	Start Position
	End   Position
	Width float64
	Fill  string
}

// Polyline is an open or closed point list.
type Polyline struct {
	Points []Position
	Width  float64
	Fill   string
}

// Arc is a three-point arc.
type Arc struct {
	Start Position
	Mid   Position
	End   Position
	Width float64
	Fill  string
}

// Circle is a full circle.
type Circle struct {
	Center Position
	Radius float64
	Width  float64
	Fill   string
}

// Text is free text in a symbol body.
type Text struct {
	Text     string
	Position Position
	Angle    Angle // degrees
	Size     float64
	Hidden   bool
}

// Metadata feeds the symbol's property block.
type Metadata struct {
	Reference    string // designator prefix, e.g. "U"
	Footprint    string // lib:name
	Datasheet    string
	Description  string
	LCSC         string
	Manufacturer string
	MPN          string
	Keywords     string
}

// Symbol is one library symbol.
type Symbol struct {
	Name       string
	Pins       []Pin
	Rectangles []Rectangle
	Polylines  []Polyline
	Arcs       []Arc
	Circles    []Circle
	Texts      []Text
	Meta       Metadata

	// Properties holds every property read back from a file.
	Properties []sexp.Property
}

// With returns a copy carrying meta.
func (s *Symbol) With(meta Metadata) *Symbol {
	cp := *s
	cp.Meta = meta
	return &cp
}

// Property returns the value of the named property read from a file.
func (s *Symbol) Property(key string) (sexp.Property, bool) {
	for _, p := range s.Properties {
		if p.Key == key {
			return p, true
		}
	}
	return sexp.Property{}, false
}

// GetBoundingBox covers the body graphics and the pin connection points.
func (s *Symbol) GetBoundingBox() sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()
	for _, r := range s.Rectangles {
		bbox.Expand(r.Start)
		bbox.Expand(r.End)
	}
	for _, p := range s.Polylines {
		for _, pt := range p.Points {
			bbox.Expand(pt)
		}
	}
	for _, a := range s.Arcs {
		bbox.Expand(a.Start)
		bbox.Expand(a.Mid)
		bbox.Expand(a.End)
	}
	for _, c := range s.Circles {
		bbox.Expand(Position{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius})
		bbox.Expand(Position{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius})
	}
	for _, p := range s.Pins {
		bbox.Expand(p.Position)
	}
	return bbox
}
