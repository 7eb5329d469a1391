// Package footprint models a KiCad footprint library entry (.kicad_mod) and
// reads and writes its S-expression form.
package footprint

import (
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

type (
	Position      = sexp.Position
	PositionAngle = sexp.PositionAngle
	Size          = sexp.Size
	BoundingBox   = sexp.BoundingBox
)

// Pad types
const (
	PadSMD      = "smd"
	PadTHT      = "thru_hole"
	PadNPTH     = "np_thru_hole"
	AttrSMD     = "smd"
	AttrTHT     = "through_hole"
	ShapeRect   = "rect"
	ShapeOval   = "oval"
	ShapeRound  = "circle"
	ShapeCustom = "custom"
)

// Drill describes a pad hole. Oval drills have distinct Width and Height.
type Drill struct {
	Diameter float64
	Oval     bool
	Width    float64
	Height   float64
}

// Pad represents a footprint pad
type Pad struct {
	Number   string        // Pad number/name, may repeat
	Type     string        // smd, thru_hole, np_thru_hole
	Shape    string        // rect, circle, oval, custom
	Position PositionAngle // Position and rotation
	Size     Size          // Pad size
	Drill    *Drill        // nil for SMD pads
	Layers   []string      // Layers the pad appears on, in output order
	Net      string        // empty for unconnected pads
	Outline  []Position    // custom pad outline relative to Position
}

// Track is a copper or drawing polyline.
type Track struct {
	Layer  string
	Width  float64
	Points []Position
}

// Graphic kinds
const (
	GraphicLine   = "line"
	GraphicArc    = "arc"
	GraphicCircle = "circle"
	GraphicRect   = "rect"
	GraphicPoly   = "poly"
	GraphicText   = "text"
)

// Graphic represents graphical elements
type Graphic struct {
	Kind   string     // line, arc, circle, rect, poly, text
	Layer  string     // Layer name
	Start  Position   // line, arc, rect
	Mid    Position   // arc
	End    Position   // line, arc, rect; circle: point on circumference
	Center Position   // circle
	Points []Position // poly
	Arcs   []PolyArc  // poly edges drawn as arcs
	Width  float64    // stroke width
	Fill   bool

	Text     string
	Angle    float64
	FontSize float64
	Mirror   bool
	Hidden   bool
}

// PolyArc turns the polygon edge ending at Points[End] into an arc through
// Mid. End 0 is the closing edge from the last point.
type PolyArc struct {
	End int
	Mid Position
}

// Metadata is the descriptive part of a footprint.
type Metadata struct {
	Description string
	Keywords    string
	Datasheet   string
	LCSC        string
}

// Model is the 3D model block of a footprint.
type Model struct {
	Path      string
	Transform model3d.Transform
	Scale     model3d.Vec3
}

// Footprint is one library footprint. Values built by the converter are not
// modified afterwards; With returns an amended copy.
type Footprint struct {
	Name     string
	Version  int // file format version, set by Read
	Attr     string
	Pads     []Pad
	Tracks   []Track
	Graphics []Graphic
	Meta     Metadata

	// ModelRef is the model declared by the source document.
	ModelRef *model3d.Ref
	// Model is the placed model block, if one will be written.
	Model *Model

	// Properties holds every property read back from a file.
	Properties []sexp.Property
}

// With returns a copy carrying meta and model.
func (fp *Footprint) With(meta Metadata, model *Model) *Footprint {
	cp := *fp
	cp.Meta = meta
	cp.Model = model
	return &cp
}

// Property returns the value of the named property read from a file.
func (fp *Footprint) Property(key string) (string, bool) {
	for _, p := range fp.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IsThroughHole reports whether any pad is drilled and plated.
func (fp *Footprint) IsThroughHole() bool {
	for _, p := range fp.Pads {
		if p.Type == PadTHT {
			return true
		}
	}
	return false
}
