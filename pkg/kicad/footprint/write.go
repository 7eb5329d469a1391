package footprint

import (
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

// Options selects the target file format.
type Options struct {
	Format version.Format
}

const (
	textSize      = 1.0
	textThickness = 0.15
	fabTextSize   = 0.5
	courtyardGap  = 0.25
	courtyardLine = 0.05
)

type writer struct {
	fp     *Footprint
	format version.Format
	ids    *sexp.UUIDGen
	nets   map[string]int
}

// netCode numbers nets from 1 in order of first use; 0 is KiCad's
// unconnected net.
func (w *writer) netCode(name string) int {
	if w.nets == nil {
		w.nets = make(map[string]int)
	}
	code, ok := w.nets[name]
	if !ok {
		code = len(w.nets) + 1
		w.nets[name] = code
	}
	return code
}

// Write renders fp as the text of a .kicad_mod file named name.
func Write(fp *Footprint, name string, opts Options) string {
	return Node(fp, name, opts).Render() + "\n"
}

// Node builds the footprint tree in KiCad's own field order.
func Node(fp *Footprint, name string, opts Options) *sexp.Node {
	format := opts.Format
	if format.Major == 0 {
		format = version.Default()
	}
	w := &writer{fp: fp, format: format, ids: sexp.NewUUIDGen("footprint/"+name, format.ItemUUIDs)}

	root := sexp.NewNode("footprint", sexp.Quoted(name))
	root.Append("version", format.FootprintVersion)
	root.Append("generator", sexp.Quoted(version.Generator))
	if format.HasGeneratorVersion() {
		root.Append("generator_version", sexp.Quoted(format.GeneratorVersion))
	}
	root.Append("layer", sexp.Quoted("F.Cu"))
	if fp.Meta.Description != "" {
		root.Append("descr", sexp.Quoted(fp.Meta.Description))
	}
	if fp.Meta.Keywords != "" {
		root.Append("tags", sexp.Quoted(fp.Meta.Keywords))
	}

	bbox := fp.GetBoundingBox()
	refY, valY := -1.0, 1.0
	if !bbox.IsEmpty() {
		refY, valY = bbox.Min.Y-1, bbox.Max.Y+1
	}
	root.Add(w.property("Reference", "REF**", Position{Y: refY}, "F.SilkS", false))
	root.Add(w.property("Value", name, Position{Y: valY}, "F.Fab", false))
	root.Add(w.property("Datasheet", fp.Meta.Datasheet, Position{}, "F.Fab", true))
	root.Add(w.property("Description", fp.Meta.Description, Position{}, "F.Fab", true))
	if fp.Meta.LCSC != "" {
		root.Add(w.property("LCSC", fp.Meta.LCSC, Position{}, "F.Fab", true))
	}

	attr := fp.Attr
	if attr == "" {
		attr = AttrSMD
		if fp.IsThroughHole() {
			attr = AttrTHT
		}
	}
	root.Append("attr", sexp.Symbol(attr))

	for _, t := range fp.Tracks {
		for i := 1; i < len(t.Points); i++ {
			root.Add(w.line(t.Points[i-1], t.Points[i], t.Width, t.Layer))
		}
	}
	for _, g := range fp.Graphics {
		if n := w.graphic(g); n != nil {
			root.Add(n)
		}
	}

	if !bbox.IsEmpty() {
		crt := bbox.Grow(courtyardGap)
		root.Add(w.rect(crt.Min, crt.Max, courtyardLine, false, "F.CrtYd"))
	}
	root.Add(w.text("user", "${REFERENCE}", Position{}, 0, "F.Fab", fabTextSize, false, false))

	for _, p := range fp.Pads {
		root.Add(w.pad(p))
	}

	if format.EmbeddedFonts {
		root.Append("embedded_fonts", false)
	}
	if fp.Model != nil && fp.Model.Path != "" {
		root.Add(modelNode(fp.Model))
	}
	return root
}

func xy(name string, p Position) *sexp.Node {
	return sexp.NewNode(name, p.X, p.Y)
}

// polyPoints writes a closed outline. Arc edges replace the (xy) of their
// end point with (arc (start) (mid) (end)).
func polyPoints(points []Position, arcs []PolyArc) *sexp.Node {
	pts := sexp.NewNode("pts")
	mids := make(map[int]Position, len(arcs))
	for _, a := range arcs {
		if a.End >= 0 && a.End < len(points) {
			mids[a.End] = a.Mid
		}
	}
	arc := func(from, to int) *sexp.Node {
		return sexp.NewNode("arc", xy("start", points[from]), xy("mid", mids[to]), xy("end", points[to]))
	}
	for i, p := range points {
		if _, ok := mids[i]; ok && i > 0 {
			pts.Add(arc(i-1, i))
			continue
		}
		pts.Add(xy("xy", p))
	}
	if _, ok := mids[0]; ok && len(points) > 1 {
		pts.Add(arc(len(points)-1, 0))
	}
	return pts
}

func at(p Position, angle float64) *sexp.Node {
	n := sexp.NewNode("at", p.X, p.Y)
	if angle != 0 {
		n.Add(angle)
	}
	return n
}

func stroke(width float64) *sexp.Node {
	return sexp.NewNode("stroke", sexp.NewNode("width", width), sexp.NewNode("type", sexp.Symbol("solid")))
}

func layer(name string) *sexp.Node {
	return sexp.NewNode("layer", sexp.Quoted(name))
}

func fill(solid bool) *sexp.Node {
	if solid {
		return sexp.NewNode("fill", sexp.Symbol("solid"))
	}
	return sexp.NewNode("fill", sexp.Symbol("none"))
}

func effects(size float64, hidden, mirror bool, hideAsNode bool) *sexp.Node {
	font := sexp.NewNode("font", sexp.NewNode("size", size, size), sexp.NewNode("thickness", size*textThickness/textSize))
	e := sexp.NewNode("effects", font)
	if mirror {
		e.Append("justify", sexp.Symbol("mirror"))
	}
	if hidden && !hideAsNode {
		e.Add(sexp.Symbol("hide"))
	}
	return e
}

func (w *writer) property(key, value string, pos Position, layerName string, hidden bool) *sexp.Node {
	n := sexp.NewNode("property", sexp.Quoted(key), sexp.Quoted(value),
		sexp.NewNode("at", pos.X, pos.Y, 0.0),
		layer(layerName),
	)
	if hidden && w.format.HideAsNode {
		n.Append("hide", true)
	}
	n.AddOpt(w.ids.Next())
	n.Add(effects(textSize, hidden, false, w.format.HideAsNode))
	return n
}

func (w *writer) text(kind, value string, pos Position, angle float64, layerName string, size float64, mirror, hidden bool) *sexp.Node {
	n := sexp.NewNode("fp_text", sexp.Symbol(kind), sexp.Quoted(value), at(pos, angle), layer(layerName))
	if hidden && w.format.HideAsNode {
		n.Append("hide", true)
	}
	n.AddOpt(w.ids.Next())
	n.Add(effects(size, hidden, mirror, w.format.HideAsNode))
	return n
}

func (w *writer) line(a, b Position, width float64, layerName string) *sexp.Node {
	n := sexp.NewNode("fp_line", xy("start", a), xy("end", b), stroke(width), layer(layerName))
	return n.AddOpt(w.ids.Next())
}

func (w *writer) rect(a, b Position, width float64, solid bool, layerName string) *sexp.Node {
	n := sexp.NewNode("fp_rect", xy("start", a), xy("end", b), stroke(width), fill(solid), layer(layerName))
	return n.AddOpt(w.ids.Next())
}

func (w *writer) graphic(g Graphic) *sexp.Node {
	var n *sexp.Node
	switch g.Kind {
	case GraphicLine:
		return w.line(g.Start, g.End, g.Width, g.Layer)
	case GraphicRect:
		return w.rect(g.Start, g.End, g.Width, g.Fill, g.Layer)
	case GraphicArc:
		n = sexp.NewNode("fp_arc", xy("start", g.Start), xy("mid", g.Mid), xy("end", g.End), stroke(g.Width), layer(g.Layer))
	case GraphicCircle:
		n = sexp.NewNode("fp_circle", xy("center", g.Center), xy("end", g.End), stroke(g.Width), fill(g.Fill), layer(g.Layer))
	case GraphicPoly:
		n = sexp.NewNode("fp_poly", polyPoints(g.Points, g.Arcs), stroke(g.Width), fill(g.Fill), layer(g.Layer))
	case GraphicText:
		return w.text("user", g.Text, g.Start, g.Angle, g.Layer, g.FontSize, g.Mirror, g.Hidden)
	default:
		return nil
	}
	return n.AddOpt(w.ids.Next())
}

func (w *writer) pad(p Pad) *sexp.Node {
	n := sexp.NewNode("pad", sexp.Quoted(p.Number), sexp.Symbol(p.Type), sexp.Symbol(p.Shape),
		at(p.Position.Position, float64(p.Position.Angle)),
		sexp.NewNode("size", p.Size.Width, p.Size.Height),
	)
	if p.Drill != nil {
		d := sexp.NewNode("drill")
		if p.Drill.Oval {
			d.Add(sexp.Symbol("oval"), p.Drill.Width, p.Drill.Height)
		} else {
			d.Add(p.Drill.Diameter)
		}
		n.Add(d)
	}
	layers := sexp.NewNode("layers")
	for _, l := range p.Layers {
		layers.Add(sexp.Quoted(l))
	}
	n.Add(layers)
	if p.Net != "" {
		n.Append("net", w.netCode(p.Net), sexp.Quoted(p.Net))
	}

	if p.Shape == ShapeCustom && len(p.Outline) > 0 {
		n.Append("options", sexp.NewNode("clearance", sexp.Symbol("outline")), sexp.NewNode("anchor", sexp.Symbol("circle")))
		pts := sexp.NewNode("pts")
		for _, o := range p.Outline {
			pts.Add(xy("xy", o))
		}
		n.Append("primitives", sexp.NewNode("gr_poly", pts, sexp.NewNode("width", 0.0), sexp.NewNode("fill", true)))
	}
	return n.AddOpt(w.ids.Next())
}

func vec(name string, v model3d.Vec3) *sexp.Node {
	return sexp.NewNode(name, sexp.NewNode("xyz", v.X, v.Y, v.Z))
}

func modelNode(m *Model) *sexp.Node {
	scale := m.Scale
	if scale == (model3d.Vec3{}) {
		scale = model3d.Vec3{X: 1, Y: 1, Z: 1}
	}
	return sexp.NewNode("model", sexp.Quoted(m.Path),
		vec("offset", m.Transform.Offset),
		vec("scale", scale),
		vec("rotate", m.Transform.Rotation),
	)
}
