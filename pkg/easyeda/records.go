// Package easyeda decodes EasyEDA shape strings into typed shape records.
//
// Every footprint and symbol in an EasyEDA document is a list of strings such
// as "PAD~RECT~4000~3000~6~4~1~~1~0~...". The leading token selects the record
// kind and the remaining '~' separated fields are positional. Decoding is
// permissive: unknown kinds and short or malformed records are dropped and
// counted, never reported as errors.
package easyeda

// Point is a coordinate in vendor units (10 mil) until normalised.
type Point struct {
	X float64
	Y float64
}

// Record is one decoded shape. The set of implementations is closed.
type Record interface {
	// Tag names the record kind.
	Tag() string
	isRecord()
}

// Pad is a footprint pad (PAD, and the pad-like HOLE and VIA records).
type Pad struct {
	Kind       string // source tag: PAD, HOLE or VIA
	Shape      string // RECT, ELLIPSE, OVAL, POLYGON
	Center     Point
	Width      float64
	Height     float64
	Layer      int
	Net        string
	Number     string
	HoleRadius float64
	HoleLength float64 // non-zero for slotted holes
	Points     []Point // outline of POLYGON pads
	Rotation   float64
	Plated     bool
	ID         string
}

// Track is an open polyline on a footprint layer.
type Track struct {
	Width  float64
	Layer  int
	Net    string
	Points []Point
	ID     string
}

// Arc is a circular arc kept as start, mid and end points.
type Arc struct {
	Width  float64
	Layer  int // zero for symbol arcs
	Start  Point
	Mid    Point
	End    Point
	Filled bool
	ID     string
}

// Circle is a full circle.
type Circle struct {
	Center Point
	Radius float64
	Width  float64
	Layer  int
	Filled bool
	ID     string
}

// Rect is an axis-aligned rectangle given by its top-left corner.
type Rect struct {
	Origin Point
	Width  float64
	Height float64
	Stroke float64
	Layer  int
	Filled bool
	ID     string
}

// Ellipse is a symbol ellipse.
type Ellipse struct {
	Center Point
	RX     float64
	RY     float64
	Width  float64
	Filled bool
	ID     string
}

// Text is free text on a footprint layer or in a symbol.
type Text struct {
	Kind     string // footprint: N (name), P (prefix), L (plain); symbol: mark
	Pos      Point
	Rotation float64
	Layer    int
	FontSize float64
	Width    float64
	Text     string
	Mirror   bool
	Visible  bool
	Anchor   string
	ID       string
}

// Polyline is an open or closed point list (PL, PG, PT, SOLIDREGION).
type Polyline struct {
	Points []Point
	Arcs   []PolyArc // closed outlines only
	Width  float64
	Layer  int
	Closed bool
	Filled bool
	ID     string
}

// PolyArc marks the edge ending at Points[End] as an arc through Mid.
// The edge starts at Points[End-1], or at the last point when End is 0.
type PolyArc struct {
	End int
	Mid Point
}

// SVGNode references the 3D model attached to a footprint.
type SVGNode struct {
	UUID        string
	Title       string
	Origin      Point
	Z           float64 // declared height above the board
	Rotation    [3]float64
	HasRotation bool
	Width       float64
	Height      float64
}

// PinShape decorations carried by the inverted-dot and clock segments.
const (
	PinLine          = "line"
	PinInverted      = "inverted"
	PinClock         = "clock"
	PinInvertedClock = "inverted_clock"
)

// Pin is a symbol pin. Pos is the electrical connection point; PathStart and
// PathEnd are the ends of the drawn pin stroke.
type Pin struct {
	Number        string
	Name          string
	Electric      int
	Pos           Point
	Rotation      float64
	PathStart     Point
	PathEnd       Point
	HasPath       bool
	Shape         string
	NameVisible   bool
	NumberVisible bool
	Hidden        bool
	ID            string
}

func (p Pad) Tag() string {
	if p.Kind != "" {
		return p.Kind
	}
	return "PAD"
}

func (Track) Tag() string    { return "TRACK" }
func (Arc) Tag() string      { return "ARC" }
func (Circle) Tag() string   { return "CIRCLE" }
func (Rect) Tag() string     { return "RECT" }
func (Ellipse) Tag() string  { return "E" }
func (Text) Tag() string     { return "TEXT" }
func (Polyline) Tag() string { return "PL" }
func (SVGNode) Tag() string  { return "SVGNODE" }
func (Pin) Tag() string      { return "P" }

func (Pad) isRecord()      {}
func (Track) isRecord()    {}
func (Arc) isRecord()      {}
func (Circle) isRecord()   {}
func (Rect) isRecord()     {}
func (Ellipse) isRecord()  {}
func (Text) isRecord()     {}
func (Polyline) isRecord() {}
func (SVGNode) isRecord()  {}
func (Pin) isRecord()      {}
