package footprint

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

// Read parses a .kicad_mod document.
func Read(r io.Reader) (*Footprint, error) {
	exprs, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint: %w", err)
	}
	if len(exprs) != 1 {
		return nil, fmt.Errorf("expected one top-level expression, got %d", len(exprs))
	}
	return parseFootprint(exprs[0])
}

// ReadString parses a .kicad_mod document held in memory.
func ReadString(s string) (*Footprint, error) {
	return Read(strings.NewReader(s))
}

// parseFootprint extracts a footprint definition
// Expected format: (footprint "name" (version N) (layer "F.Cu") ...)
func parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	if name, err := sexp.GetNodeName(node); err != nil || name != "footprint" {
		return nil, fmt.Errorf("expected (footprint ...), got %q", name)
	}

	fp := &Footprint{}

	name, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	fp.Name = name

	if v, ok := sexp.FindNode(node, "version"); ok {
		fp.Version, _ = sexp.GetInt(v, 1)
	}
	if d, ok := sexp.FindNode(node, "descr"); ok {
		fp.Meta.Description, _ = sexp.GetString(d, 1)
	}
	if t, ok := sexp.FindNode(node, "tags"); ok {
		fp.Meta.Keywords, _ = sexp.GetString(t, 1)
	}
	if a, ok := sexp.FindNode(node, "attr"); ok {
		fp.Attr, _ = sexp.GetString(a, 1)
	}

	for _, propNode := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(propNode)
		if err != nil {
			continue
		}
		fp.Properties = append(fp.Properties, prop)
		switch prop.Key {
		case "Datasheet":
			fp.Meta.Datasheet = prop.Value
		case "LCSC":
			fp.Meta.LCSC = prop.Value
		}
	}

	for _, padNode := range sexp.FindAllNodes(node, "pad") {
		pad, err := parsePad(padNode)
		if err != nil {
			return nil, err
		}
		fp.Pads = append(fp.Pads, *pad)
	}

	// Items appear in file order within each kind.
	for _, item := range sexp.GetListItems(node) {
		kind, err := sexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}
		var g *Graphic
		switch kind {
		case "fp_line", "fp_arc", "fp_circle", "fp_rect", "fp_poly":
			g, err = parseGraphic(kind, item)
		case "fp_text":
			g, err = parseText(item)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		fp.Graphics = append(fp.Graphics, *g)
	}

	if m, ok := sexp.FindNode(node, "model"); ok {
		fp.Model = parseModel(m)
	}

	return fp, nil
}

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) [(drill ...)] (layers ...) ...)
func parsePad(node kicadsexp.Sexp) (*Pad, error) {
	pad := &Pad{}

	number, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	pad.Number = number

	if pad.Type, err = sexp.GetString(node, 2); err != nil {
		return nil, fmt.Errorf("pad %q: failed to parse pad type: %w", number, err)
	}
	if pad.Shape, err = sexp.GetString(node, 3); err != nil {
		return nil, fmt.Errorf("pad %q: failed to parse pad shape: %w", number, err)
	}

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return nil, fmt.Errorf("pad %q: missing required 'at' position", number)
	}
	if pad.Position, err = sexp.GetPosition(atNode); err != nil {
		return nil, fmt.Errorf("pad %q: %w", number, err)
	}

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("pad %q: missing required 'size' field", number)
	}
	w, errW := sexp.GetFloat(sizeNode, 1)
	h, errH := sexp.GetFloat(sizeNode, 2)
	if errW != nil || errH != nil {
		return nil, fmt.Errorf("pad %q: bad size", number)
	}
	pad.Size = Size{Width: w, Height: h}

	// Drill is (drill d) or (drill oval w h)
	if drillNode, found := sexp.FindNode(node, "drill"); found {
		d := &Drill{}
		if first, _ := sexp.GetString(drillNode, 1); first == "oval" {
			d.Oval = true
			d.Width, _ = sexp.GetFloat(drillNode, 2)
			d.Height, _ = sexp.GetFloat(drillNode, 3)
		} else {
			d.Diameter, _ = sexp.GetFloat(drillNode, 1)
		}
		pad.Drill = d
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("pad %q: missing required 'layers' field", number)
	}
	for _, item := range sexp.GetListItems(layersNode) {
		if sym, ok := item.(kicadsexp.Symbol); ok && sym != "" {
			pad.Layers = append(pad.Layers, string(sym))
		}
	}

	if netNode, ok := sexp.FindNode(node, "net"); ok {
		pad.Net, _ = sexp.GetString(netNode, 2)
	}

	if prims, ok := sexp.FindNode(node, "primitives"); ok {
		if poly, ok := sexp.FindNode(prims, "gr_poly"); ok {
			if pts, ok := sexp.FindNode(poly, "pts"); ok {
				pad.Outline = sexp.GetPoints(pts)
			}
		}
	}

	return pad, nil
}

func parseGraphic(kind string, node kicadsexp.Sexp) (*Graphic, error) {
	g := &Graphic{}
	if l, ok := sexp.FindNode(node, "layer"); ok {
		g.Layer, _ = sexp.GetString(l, 1)
	}
	if s, ok := sexp.FindNode(node, "stroke"); ok {
		st, _ := sexp.GetStroke(s)
		g.Width = st.Width
	} else if wn, ok := sexp.FindNode(node, "width"); ok {
		g.Width, _ = sexp.GetFloat(wn, 1)
	}
	if f, ok := sexp.FindNode(node, "fill"); ok {
		v, _ := sexp.GetString(f, 1)
		g.Fill = v == "solid" || v == "yes"
	}

	point := func(key string) (Position, error) {
		n, ok := sexp.FindNode(node, key)
		if !ok {
			return Position{}, fmt.Errorf("missing %s", key)
		}
		return sexp.GetPositionXY(n)
	}

	var err error
	switch kind {
	case "fp_line", "fp_rect":
		g.Kind = GraphicLine
		if kind == "fp_rect" {
			g.Kind = GraphicRect
		}
		if g.Start, err = point("start"); err != nil {
			return nil, err
		}
		if g.End, err = point("end"); err != nil {
			return nil, err
		}
	case "fp_arc":
		g.Kind = GraphicArc
		if g.Start, err = point("start"); err != nil {
			return nil, err
		}
		if g.Mid, err = point("mid"); err != nil {
			return nil, err
		}
		if g.End, err = point("end"); err != nil {
			return nil, err
		}
	case "fp_circle":
		g.Kind = GraphicCircle
		if g.Center, err = point("center"); err != nil {
			return nil, err
		}
		if g.End, err = point("end"); err != nil {
			return nil, err
		}
	case "fp_poly":
		g.Kind = GraphicPoly
		pts, ok := sexp.FindNode(node, "pts")
		if !ok {
			return nil, fmt.Errorf("missing pts")
		}
		if g.Points, g.Arcs, err = parsePolyPoints(pts); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// parsePolyPoints reads a (pts ...) list mixing (xy) and (arc) entries. An arc
// whose end returns to the first point closes the outline.
func parsePolyPoints(pts kicadsexp.Sexp) ([]Position, []PolyArc, error) {
	var (
		points []Position
		arcs   []PolyArc
	)
	for _, item := range sexp.SexpToSlice(pts) {
		name, err := sexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}
		switch name {
		case "xy":
			p, err := sexp.GetPositionXY(item)
			if err != nil {
				return nil, nil, err
			}
			points = append(points, p)
		case "arc":
			var ends [3]Position
			for i, key := range []string{"start", "mid", "end"} {
				n, ok := sexp.FindNode(item, key)
				if !ok {
					return nil, nil, fmt.Errorf("arc missing %s", key)
				}
				if ends[i], err = sexp.GetPositionXY(n); err != nil {
					return nil, nil, err
				}
			}
			start, mid, end := ends[0], ends[1], ends[2]
			if len(points) == 0 || points[len(points)-1] != start {
				points = append(points, start)
			}
			if len(points) > 1 && end == points[0] {
				arcs = append(arcs, PolyArc{End: 0, Mid: mid})
				continue
			}
			points = append(points, end)
			arcs = append(arcs, PolyArc{End: len(points) - 1, Mid: mid})
		}
	}
	return points, arcs, nil
}

func parseText(node kicadsexp.Sexp) (*Graphic, error) {
	g := &Graphic{Kind: GraphicText}
	var err error
	if g.Text, err = sexp.GetString(node, 2); err != nil {
		return nil, err
	}
	if a, ok := sexp.FindNode(node, "at"); ok {
		pos, err := sexp.GetPosition(a)
		if err != nil {
			return nil, err
		}
		g.Start = pos.Position
		g.Angle = float64(pos.Angle)
	}
	if l, ok := sexp.FindNode(node, "layer"); ok {
		g.Layer, _ = sexp.GetString(l, 1)
	}
	if e, ok := sexp.FindNode(node, "effects"); ok {
		eff, _ := sexp.GetEffects(e)
		g.FontSize = eff.Font.Size.Height
		g.Mirror = eff.Justify.Mirror
		g.Hidden = eff.Hide
	}
	if sexp.GetFlag(node, "hide") {
		g.Hidden = true
	}
	return g, nil
}

func parseModel(node kicadsexp.Sexp) *Model {
	m := &Model{}
	m.Path, _ = sexp.GetString(node, 1)
	read := func(key string) model3d.Vec3 {
		n, ok := sexp.FindNode(node, key)
		if !ok {
			return model3d.Vec3{}
		}
		xyz, ok := sexp.FindNode(n, "xyz")
		if !ok {
			return model3d.Vec3{}
		}
		x, _ := sexp.GetFloat(xyz, 1)
		y, _ := sexp.GetFloat(xyz, 2)
		z, _ := sexp.GetFloat(xyz, 3)
		return model3d.Vec3{X: x, Y: y, Z: z}
	}
	m.Transform.Offset = read("offset")
	m.Scale = read("scale")
	m.Transform.Rotation = read("rotate")
	return m
}
