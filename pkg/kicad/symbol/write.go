package symbol

import (
	"strings"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
)

// Options selects the target file format.
type Options struct {
	Format version.Format
}

const (
	fontSize      = 1.27
	propertyGap   = 1.27
	defaultStroke = 0.254
)

type writer struct {
	format version.Format
}

// Write builds the (symbol ...) entry for sym. Graphics go in unit
// NAME_0_1 and pins in NAME_1_1.
func Write(sym *Symbol, name string, opts Options) *sexp.Node {
	format := opts.Format
	if format.Major == 0 {
		format = version.Default()
	}
	w := &writer{format: format}

	root := sexp.NewNode("symbol", sexp.Quoted(name))
	root.Append("exclude_from_sim", false)
	root.Append("in_bom", true)
	root.Append("on_board", true)

	bbox := sym.GetBoundingBox()
	refY, valY := 2.54, -2.54
	if !bbox.IsEmpty() {
		refY, valY = bbox.Max.Y+propertyGap, bbox.Min.Y-propertyGap
	}

	m := sym.Meta
	root.Add(w.property("Reference", strings.TrimRight(m.Reference, "?"), Position{Y: refY}, false))
	root.Add(w.property("Value", name, Position{Y: valY}, false))
	root.Add(w.property("Footprint", m.Footprint, Position{}, true))
	root.Add(w.property("Datasheet", m.Datasheet, Position{}, true))
	root.Add(w.property("Description", m.Description, Position{}, true))
	for _, p := range []struct{ key, value string }{
		{"LCSC", m.LCSC},
		{"Manufacturer", m.Manufacturer},
		{"MPN", m.MPN},
		{"ki_keywords", m.Keywords},
	} {
		if p.value != "" {
			root.Add(w.property(p.key, p.value, Position{}, true))
		}
	}

	body := root.Append("symbol", sexp.Quoted(name+"_0_1"))
	for _, r := range sym.Rectangles {
		body.Append("rectangle", xy("start", r.Start), xy("end", r.End), stroke(r.Width), fill(r.Fill))
	}
	for _, c := range sym.Circles {
		body.Append("circle", xy("center", c.Center), sexp.NewNode("radius", c.Radius), stroke(c.Width), fill(c.Fill))
	}
	for _, a := range sym.Arcs {
		body.Append("arc", xy("start", a.Start), xy("mid", a.Mid), xy("end", a.End), stroke(a.Width), fill(a.Fill))
	}
	for _, p := range sym.Polylines {
		pts := sexp.NewNode("pts")
		for _, pt := range p.Points {
			pts.Add(xy("xy", pt))
		}
		body.Append("polyline", pts, stroke(p.Width), fill(p.Fill))
	}
	for _, t := range sym.Texts {
		body.Append("text", sexp.Quoted(t.Text),
			sexp.NewNode("at", t.Position.X, t.Position.Y, float64(t.Angle)*sexp.DegreesToDecidegrees),
			w.effects(t.Size, t.Hidden),
		)
	}

	unit := root.Append("symbol", sexp.Quoted(name+"_1_1"))
	for _, p := range sym.Pins {
		unit.Add(w.pin(p))
	}

	if format.EmbeddedFonts {
		root.Append("embedded_fonts", false)
	}
	return root
}

// WriteLibrary wraps symbol entries in a kicad_symbol_lib document.
func WriteLibrary(format version.Format, symbols ...*sexp.Node) string {
	if format.Major == 0 {
		format = version.Default()
	}
	lib := sexp.NewNode("kicad_symbol_lib",
		sexp.NewNode("version", format.SymbolVersion),
		sexp.NewNode("generator", sexp.Quoted(version.Generator)),
	)
	if format.HasGeneratorVersion() {
		lib.Append("generator_version", sexp.Quoted(format.GeneratorVersion))
	}
	for _, s := range symbols {
		lib.Add(s)
	}
	return lib.Render() + "\n"
}

func xy(name string, p Position) *sexp.Node {
	return sexp.NewNode(name, p.X, p.Y)
}

func stroke(width float64) *sexp.Node {
	if width <= 0 {
		width = defaultStroke
	}
	return sexp.NewNode("stroke", sexp.NewNode("width", width), sexp.NewNode("type", sexp.Symbol("default")))
}

func fill(kind string) *sexp.Node {
	if kind == "" {
		kind = FillNone
	}
	return sexp.NewNode("fill", sexp.NewNode("type", sexp.Symbol(kind)))
}

func (w *writer) effects(size float64, hidden bool) *sexp.Node {
	if size <= 0 {
		size = fontSize
	}
	e := sexp.NewNode("effects", sexp.NewNode("font", sexp.NewNode("size", size, size)))
	if hidden {
		if w.format.HideAsNode {
			e.Append("hide", true)
		} else {
			e.Add(sexp.Symbol("hide"))
		}
	}
	return e
}

func (w *writer) property(key, value string, pos Position, hidden bool) *sexp.Node {
	return sexp.NewNode("property", sexp.Quoted(key), sexp.Quoted(value),
		sexp.NewNode("at", pos.X, pos.Y, 0.0),
		w.effects(fontSize, hidden),
	)
}

func (w *writer) pin(p Pin) *sexp.Node {
	style := p.Style
	if style == "" {
		style = "line"
	}
	kind := p.Type
	if kind == "" {
		kind = PinUnspecified
	}
	n := sexp.NewNode("pin", sexp.Symbol(kind), sexp.Symbol(style),
		sexp.NewNode("at", p.Position.X, p.Position.Y, float64(p.Angle)),
		sexp.NewNode("length", p.Length),
	)
	if p.Hidden {
		if w.format.HideAsNode {
			n.Append("hide", true)
		} else {
			n.Add(sexp.Symbol("hide"))
		}
	}
	n.Append("name", sexp.Quoted(p.Name), w.effects(fontSize, p.NameHidden))
	n.Append("number", sexp.Quoted(p.Number), w.effects(fontSize, p.NumHidden))
	return n
}
